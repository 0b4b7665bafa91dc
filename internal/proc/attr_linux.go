package proc

import "syscall"

// The child gets SIGTERM if this process dies without running its own cleanup,
// e.g. after SIGKILL from the automation tool.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Pdeathsig: syscall.SIGTERM}
}
