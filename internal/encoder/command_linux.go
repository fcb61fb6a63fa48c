//go:build linux

package encoder

func inputArgs() []string {
	return []string{
		"-f", "x11grab",
		"-draw_mouse", "1",
		"-i", ":0.0",
	}
}
