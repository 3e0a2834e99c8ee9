package tape

import (
	"encoding/base64"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// EncodeEnvelope 信封 -> protobuf 二进制 -> base64
func EncodeEnvelope(env *structpb.Struct) (string, error) {
	bin, err := proto.Marshal(env)
	if err != nil {
		return "", &TapeError{StepIndex: -1, Reason: "envelope_encode_failed", Message: err.Error()}
	}
	return base64.StdEncoding.EncodeToString(bin), nil
}

func DecodeEnvelope(b64 string) (*structpb.Struct, error) {
	bin, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, &TapeError{StepIndex: -1, Reason: "envelope_decode_failed", Message: err.Error()}
	}
	env := &structpb.Struct{}
	if err := proto.Unmarshal(bin, env); err != nil {
		return nil, &TapeError{StepIndex: -1, Reason: "envelope_decode_failed", Message: err.Error()}
	}
	return env, nil
}

// EnvelopeJSON 信封的 protojson 渲染, 给 CLI 和日志用
func EnvelopeJSON(env *structpb.Struct) (string, error) {
	out, err := protojson.Marshal(env)
	if err != nil {
		return "", &TapeError{StepIndex: -1, Reason: "envelope_encode_failed", Message: err.Error()}
	}
	return string(out), nil
}
