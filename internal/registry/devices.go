package registry

import (
	_ "github.com/virtual-input/ps2d/device/keyboard" // Register keyboard device handler
	_ "github.com/virtual-input/ps2d/device/mouse"    // Register mouse device handler
)
