package safego

import (
	"time"
)

const defaultRestartTimeout = 2 * time.Second

type RecoverHandler func(value interface{})

//GlobalRecoverHandler must be set before the first RunWithRestart call
var GlobalRecoverHandler RecoverHandler

type Execution struct {
	f              func()
	recoverHandler RecoverHandler
}

//RunWithRestart runs f in a new goroutine with a panic handler:
//the handler is invoked, then after a pause the goroutine is restarted
func RunWithRestart(f func()) *Execution {
	exec := Execution{
		f:              f,
		recoverHandler: GlobalRecoverHandler,
	}
	return exec.run()
}

func (exec *Execution) run() *Execution {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if exec.recoverHandler != nil {
					exec.recoverHandler(r)
				}

				time.Sleep(defaultRestartTimeout)
				exec.run()
			}
		}()
		exec.f()
	}()
	return exec
}
