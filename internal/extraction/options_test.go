package extraction

import "testing"

func TestOnlyImagesForcesSingleDir(t *testing.T) {
	opts := Options{OnlyImages: true}
	if !opts.SingleDir() {
		t.Error("only-images must force single-directory output")
	}
	flags := opts.ExtractFlags("/out")
	if !flags.SingleDir {
		t.Error("flag mapping lost the forced single-dir")
	}
}

func TestExtractFlagsMapping(t *testing.T) {
	opts := Options{NoTexConvert: true, Overwrite: true}
	flags := opts.ExtractFlags("/out")

	if flags.OutputDir != "/out" {
		t.Errorf("OutputDir = %q", flags.OutputDir)
	}
	if flags.Tex {
		t.Error("tex conversion must be off under no-tex-convert")
	}
	if !flags.NoTexConvert || !flags.Overwrite {
		t.Error("pass-through flags lost")
	}
	if !flags.Recursive {
		t.Error("extraction is always recursive")
	}
	if flags.SingleDir {
		t.Error("single-dir should stay off without a forcing option")
	}
}

func TestDefaultOptionsConvertTex(t *testing.T) {
	flags := Options{}.ExtractFlags("/out")
	if !flags.Tex {
		t.Error("tex conversion should default on")
	}
}
