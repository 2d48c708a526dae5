// Package fatal decides which errors take the whole process down and carries
// out that decision. Classification is pure; Policy does the logging and the
// exit, with Exit swappable so the policy can be tested in-process.
package fatal

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"go.uber.org/zap"
)

type Kind int

const (
	// KindRequest errors belong to a single request and never stop the process.
	KindRequest Kind = iota
	// KindStartup covers boot failures such as an unreachable database.
	KindStartup
	// KindUncaughtPanic is a panic that escaped the main goroutine.
	KindUncaughtPanic
	// KindUnhandledAsync is a failure in a background goroutine nobody waits on.
	KindUnhandledAsync
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindStartup:
		return "startup"
	case KindUncaughtPanic:
		return "uncaught_panic"
	case KindUnhandledAsync:
		return "unhandled_async"
	default:
		return "unknown"
	}
}

// Error tags an underlying error with its Kind and the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func Startup(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStartup, Op: op, Err: err}
}

// Classify returns the Kind of err. Untagged errors are request-scoped.
func Classify(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindRequest
}

func IsFatal(err error) bool {
	return err != nil && Classify(err) != KindRequest
}

const ExitCode = 1

type Policy struct {
	Logger *zap.Logger
	Exit   func(code int)
}

func NewPolicy(logger *zap.Logger) *Policy {
	return &Policy{Logger: logger, Exit: os.Exit}
}

// Handle logs err and exits when it is fatal. It reports whether it was.
func (p *Policy) Handle(err error) bool {
	if err == nil {
		return false
	}
	kind := Classify(err)
	if kind == KindRequest {
		p.logger().Error("request error reached process policy", zap.Error(err))
		return false
	}

	p.logger().Error("fatal process error", zap.String("kind", kind.String()), zap.Error(err))
	_ = p.logger().Sync()
	p.exit(ExitCode)
	return true
}

// Recover is deferred at the top of main; a panic that reaches it is fatal.
func (p *Policy) Recover() {
	if r := recover(); r != nil {
		p.Handle(&Error{Kind: KindUncaughtPanic, Op: "main", Err: panicError(r)})
	}
}

// Go runs fn in a goroutine. A returned error or a panic inside fn is fatal.
func (p *Policy) Go(name string, fn func() error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.Handle(&Error{Kind: KindUnhandledAsync, Op: name, Err: panicError(r)})
			}
		}()
		if err := fn(); err != nil {
			p.Handle(&Error{Kind: KindUnhandledAsync, Op: name, Err: err})
		}
	}()
}

func (p *Policy) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

func (p *Policy) exit(code int) {
	if p.Exit == nil {
		os.Exit(code)
	}
	p.Exit(code)
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w\n%s", err, debug.Stack())
	}
	return fmt.Errorf("panic: %v\n%s", r, debug.Stack())
}
