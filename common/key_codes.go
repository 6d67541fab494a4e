package common

// Virtual key codes used by the viewer. Values match GLFW key codes, which use ASCII for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyB     = 66  // toggle bloom
	KeyP     = 80  // pause the shooting-star scheduler
	KeyR     = 82  // reload the config file
	KeyS     = 83  // trigger a shooting star immediately
	KeySpace = 32  // reset the camera
	KeyEsc   = 256 // handled by the window itself

	KeyRight = 262 // orbit right
	KeyLeft  = 263 // orbit left
	KeyDown  = 264 // orbit down
	KeyUp    = 265 // orbit up
)
