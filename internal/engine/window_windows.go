//go:build windows

package engine

import (
	"syscall"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	dwmapi                    = syscall.NewLazyDLL("dwmapi.dll")
	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
)

const (
	DWMWA_USE_IMMERSIVE_DARK_MODE = 20
	DWMWA_BORDER_COLOR            = 34
	DWMWA_CAPTION_COLOR           = 35
)

// setTitleBarTheme darkens the native title bar so it does not glare next
// to the night scene. Older Windows versions ignore the attributes.
func setTitleBarTheme(window *glfw.Window) {
	win32 := window.GetWin32Window()
	if win32 == nil {
		return
	}
	hwnd := uintptr(unsafe.Pointer(win32))

	var useDarkMode int32 = 1
	setWindowAttribute(hwnd, DWMWA_USE_IMMERSIVE_DARK_MODE, unsafe.Pointer(&useDarkMode), unsafe.Sizeof(useDarkMode))

	// COLORREF is 0x00BBGGRR
	var color uint32 = 0x00100505
	setWindowAttribute(hwnd, DWMWA_BORDER_COLOR, unsafe.Pointer(&color), unsafe.Sizeof(color))
	setWindowAttribute(hwnd, DWMWA_CAPTION_COLOR, unsafe.Pointer(&color), unsafe.Sizeof(color))
}

func setWindowAttribute(hwnd uintptr, attr uintptr, value unsafe.Pointer, size uintptr) {
	procDwmSetWindowAttribute.Call(hwnd, attr, uintptr(value), size)
}
