package holdem

import "errors"

var (
	ErrHandEnded      = errors.New("hand already ended")
	ErrHandInProgress = errors.New("hand in progress")
	ErrNoHand         = errors.New("no hand in progress")
)

// InvalidSetupError 构造参数违反契约 (重复座位/ID、人数不足、盲注非法等)。
// 属于调用方 bug, 引擎不回收。
type InvalidSetupError string

func (e InvalidSetupError) Error() string { return "invalid setup: " + string(e) }

func errInvalidSetup(msg string) error { return InvalidSetupError(msg) }

// InvalidStateError 引擎内部状态被破坏, 或调用方在非法阶段调用
type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid state: " + string(e) }

func errInvalidState(msg string) error { return InvalidStateError(msg) }
