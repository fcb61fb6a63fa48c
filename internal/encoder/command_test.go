package encoder

import "testing"

func TestBuildArgsIncludesSegmentMuxingFlags(t *testing.T) {
	paths := Paths{
		RecordingsDir: "/data/recordings",
		SegmentsCSV:   "/data/segments.csv",
		TimestampsTxt: "/data/timestamps.txt",
	}
	args := BuildArgs(30, 15, paths)

	want := []string{
		"-framerate", "30",
		"-segment_time", "15",
		"-segment_list", "/data/segments.csv",
		"/data/timestamps.txt",
	}
	for _, w := range want {
		found := false
		for _, a := range args {
			if a == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected arg %q in %v", w, args)
		}
	}
}

func TestBuildArgsIncludesPlatformInputStanza(t *testing.T) {
	args := BuildArgs(30, 15, Paths{RecordingsDir: "/d", SegmentsCSV: "/d/s.csv", TimestampsTxt: "/d/t.txt"})
	if len(args) < 2 || args[0] != "-f" {
		t.Fatalf("expected args to begin with input format flag, got %v", args[:min(4, len(args))])
	}
}
