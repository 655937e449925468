package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCatalog()
	c.normalizeExtraction()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.WorkshopDir, err = expandPath(c.Paths.WorkshopDir); err != nil {
		return fmt.Errorf("paths.workshop_dir: %w", err)
	}
	if c.Paths.ExtractDir, err = expandPath(c.Paths.ExtractDir); err != nil {
		return fmt.Errorf("paths.extract_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCatalog() {
	if c.Catalog.ScanWorkers <= 0 {
		c.Catalog.ScanWorkers = defaultScanWorkers
	}
	if c.Catalog.PreloadCount < 0 {
		c.Catalog.PreloadCount = defaultPreloadCount
	}
	if c.Catalog.PreloadStagger < 0 {
		c.Catalog.PreloadStagger = defaultPreloadStaggerMS
	}
	if c.Catalog.ProximityMargin < 0 {
		c.Catalog.ProximityMargin = defaultProximityMarginPX
	}
}

func (c *Config) normalizeExtraction() {
	if strings.TrimSpace(c.Extraction.Binary) == "" {
		c.Extraction.Binary = defaultExtractionBinary
	}
	if c.Extraction.TimeoutSeconds <= 0 {
		c.Extraction.TimeoutSeconds = defaultExtractionTimeout
	}
}

func (c *Config) normalizeLogging() {
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
}
