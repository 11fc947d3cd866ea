//go:build !windows

package util

func IsRunFromGUI() bool {
	// Only meaningful on Windows, where double-clicking the binary should
	// still start a working server. Unix users have nohup, systemd and a
	// bazillion other ways to run a daemon.
	return false
}

func HideConsoleWindow() {
	// No-op on non-Windows platforms
}
