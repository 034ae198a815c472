package potprovider

import (
	"strings"
	"testing"
)

func TestExtractorArgs(t *testing.T) {
	args := ExtractorArgs("http://127.0.0.1:4416", true)
	if len(args) != 2 {
		t.Fatalf("Expected 2 extractor args, got %d: %v", len(args), args)
	}

	if args[0] != "youtubepot-bgutilhttp:base_url=http://127.0.0.1:4416;disable_innertube=1" {
		t.Errorf("Unexpected provider arg: %s", args[0])
	}
	if args[1] != "youtube:player_client=default,mweb" {
		t.Errorf("Unexpected player_client arg: %s", args[1])
	}
}

func TestExtractorArgsWithoutInnertubeFlag(t *testing.T) {
	args := ExtractorArgs("http://10.0.0.2:9000", false)

	if strings.Contains(args[0], "disable_innertube") {
		t.Errorf("disable_innertube should be absent: %s", args[0])
	}
	if !strings.Contains(args[0], "base_url=http://10.0.0.2:9000") {
		t.Errorf("base_url should be wired: %s", args[0])
	}
}
