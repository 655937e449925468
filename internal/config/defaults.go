package config

const (
	defaultWorkshopDir       = "~/.steam/steam/steamapps/workshop/content/431960"
	defaultExtractDir        = "~/RePKG-GUI"
	defaultDataDir           = "~/.local/share/repkg-gui"
	defaultLogDir            = "~/.local/share/repkg-gui/logs"
	defaultScanWorkers       = 4
	defaultPreloadCount      = 6
	defaultPreloadStaggerMS  = 150
	defaultProximityMarginPX = 100
	defaultExtractionBinary  = "RePKG"
	defaultExtractionTimeout = 600
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkshopDir: defaultWorkshopDir,
			ExtractDir:  defaultExtractDir,
			DataDir:     defaultDataDir,
			LogDir:      defaultLogDir,
		},
		Catalog: Catalog{
			ScanWorkers:     defaultScanWorkers,
			PreloadCount:    defaultPreloadCount,
			PreloadStagger:  defaultPreloadStaggerMS,
			ProximityMargin: defaultProximityMarginPX,
		},
		Extraction: Extraction{
			Binary:         defaultExtractionBinary,
			TimeoutSeconds: defaultExtractionTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
