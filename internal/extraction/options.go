package extraction

import "github.com/NaiHeeeee/repkg-gui/internal/services/repkg"

// Options are the user-facing unpack switches. They are a strict subset of
// the RePKG flag surface; everything else is fixed by ExtractFlags.
type Options struct {
	// OnlyImages keeps only media files after extraction. It also forces
	// single-directory output so the cleanup pass sees a flat layout.
	OnlyImages bool
	// NoTexConvert leaves tex assets in their container format.
	NoTexConvert bool
	// IgnoreDirStructure flattens the archive's directory tree.
	IgnoreDirStructure bool
	// Overwrite replaces files already present in the destination.
	Overwrite bool
	// AutoOpenFolder asks the caller to reveal the destination when the
	// job completes. The orchestrator only carries it.
	AutoOpenFolder bool
}

// SingleDir reports whether output collapses into one directory.
func (o Options) SingleDir() bool {
	return o.IgnoreDirStructure || o.OnlyImages
}

// ExtractFlags maps the option set onto a RePKG invocation targeting
// outputDir. Extraction is always recursive; tex conversion is on unless
// explicitly disabled.
func (o Options) ExtractFlags(outputDir string) repkg.ExtractOptions {
	return repkg.ExtractOptions{
		OutputDir:    outputDir,
		Tex:          !o.NoTexConvert,
		SingleDir:    o.SingleDir(),
		Recursive:    true,
		NoTexConvert: o.NoTexConvert,
		Overwrite:    o.Overwrite,
	}
}
