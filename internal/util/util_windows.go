//go:build windows

package util

import (
	"log/slog"
	"os"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetConsoleWindow = kernel32.NewProc("GetConsoleWindow")
	procShowWindow       = user32.NewProc("ShowWindow")
	procFreeConsole      = kernel32.NewProc("FreeConsole")
)

// Shells whose child processes count as CLI launches.
var knownShells = map[string]bool{
	"cmd.exe":             true,
	"powershell.exe":      true,
	"pwsh.exe":            true,
	"wt.exe":              true,
	"conhost.exe":         true,
	"windowsterminal.exe": true,
}

// IsRunFromGUI reports whether the process was started by double-clicking
// rather than from a shell. No console window means a GUI subsystem launch;
// with a console, the parent process decides: a shell parent is a CLI
// launch, explorer.exe is a double-click.
func IsRunFromGUI() bool {
	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd == 0 {
		return true
	}

	parent := parentProcessName()
	fromShell := knownShells[strings.ToLower(parent)]
	slog.Debug("startup parent process", "parent", parent, "fromShell", fromShell)

	if fromShell {
		return false
	}
	return strings.EqualFold(parent, "explorer.exe")
}

// HideConsoleWindow detaches and hides the console allocated for a
// double-click launch.
func HideConsoleWindow() {
	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd == 0 {
		slog.Debug("HideConsoleWindow: no console window found")
		return
	}
	_, _, _ = procShowWindow.Call(hwnd, windows.SW_HIDE)
	_, _, _ = procFreeConsole.Call()
}

func parentProcessName() string {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(snapshot)

	var pe windows.ProcessEntry32
	pe.Size = uint32(unsafe.Sizeof(pe))

	parentPID := findEntry(snapshot, &pe, uint32(os.Getpid()))
	if parentPID == 0 {
		return ""
	}
	findEntry(snapshot, &pe, parentPID)
	if pe.ProcessID != parentPID {
		return ""
	}
	return windows.UTF16ToString(pe.ExeFile[:])
}

// findEntry walks the snapshot looking for pid. On a hit pe holds the entry
// and the parent PID is returned; 0 means not found.
func findEntry(snapshot windows.Handle, pe *windows.ProcessEntry32, pid uint32) uint32 {
	if err := windows.Process32First(snapshot, pe); err != nil {
		return 0
	}
	for {
		if pe.ProcessID == pid {
			return pe.ParentProcessID
		}
		if err := windows.Process32Next(snapshot, pe); err != nil {
			return 0
		}
	}
}
