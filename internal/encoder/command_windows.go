//go:build windows

package encoder

func inputArgs() []string {
	return []string{
		"-f", "gdigrab",
		"-draw_mouse", "1",
		"-i", "desktop",
	}
}
