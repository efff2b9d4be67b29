package comtrade

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridtrace/comtrade/pkg/cff"
	"github.com/gridtrace/comtrade/pkg/cfg"
	"github.com/gridtrace/comtrade/pkg/dat"
	"github.com/gridtrace/comtrade/pkg/log"
)

// Load reads a record from disk. The path names either a combined file
// or a configuration file; combined content is recognized by a .cff
// extension or by its first marker line. For configuration files the
// data section comes from WithDataFile or from the sibling with the
// data extension, and sibling header and information files are read
// when present.
//
// Errors from the sections propagate unchanged: match them with
// errors.Is against ErrMalformedConfig, ErrMalformedData, ErrDecoding,
// ErrMalformedFile, ErrUnsupportedRevision and ErrEncoding.
func Load(path string, opts ...Option) (*Record, error) {
	o := newOptions(opts)
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".cff") || cff.Detect(data) {
		return readCombined(data, path, o)
	}

	cfgText, err := decodeText(data, o.encoding)
	if err != nil {
		return nil, err
	}
	conf, err := parseConfig(cfgText, o)
	if err != nil {
		return nil, err
	}

	datPath := o.datPath
	if datPath == "" {
		datPath = siblingPath(path, "dat")
	}
	raw, err := os.ReadFile(datPath)
	if err != nil {
		return nil, err
	}

	header, err := readSidecar(o.hdrPath, siblingPath(path, "hdr"), o)
	if err != nil {
		return nil, err
	}
	info, err := readSidecar(o.infPath, siblingPath(path, "inf"), o)
	if err != nil {
		return nil, err
	}

	o.log.Debug("record files read",
		log.String("cfg", path),
		log.String("dat", datPath),
		log.Int("dat_bytes", len(raw)))
	return build(conf, raw, header, info, path, o)
}

// Read builds a record from an in-memory configuration text and data
// section. The configuration must already be decoded text; WithEncoding
// still applies to ASCII data bytes.
func Read(cfgText string, data []byte, opts ...Option) (*Record, error) {
	o := newOptions(opts)
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}
	conf, err := parseConfig([]byte(cfgText), o)
	if err != nil {
		return nil, err
	}
	return build(conf, data, "", "", "", o)
}

// ReadCombined builds a record from an in-memory combined file.
func ReadCombined(data []byte, opts ...Option) (*Record, error) {
	o := newOptions(opts)
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}
	return readCombined(data, "", o)
}

func readCombined(data []byte, path string, o options) (*Record, error) {
	sections, err := cff.Split(data, cff.WithLogger(o.log))
	if err != nil {
		return nil, err
	}
	if len(sections.CFG) == 0 {
		return nil, fmt.Errorf("%w: no configuration section", cff.ErrMalformedFile)
	}

	cfgText, err := decodeText(sections.CFG, o.encoding)
	if err != nil {
		return nil, err
	}
	conf, err := parseConfig(cfgText, o)
	if err != nil {
		return nil, err
	}
	if sections.DataFormat != "" && !strings.EqualFold(sections.DataFormat, string(conf.Format)) {
		o.log.Warn("data section marker format differs from configuration",
			log.String("marker", sections.DataFormat),
			log.String("configuration", string(conf.Format)))
	}

	header, err := decodeText(sections.HDR, o.encoding)
	if err != nil {
		return nil, err
	}
	info, err := decodeText(sections.INF, o.encoding)
	if err != nil {
		return nil, err
	}
	return build(conf, sections.DAT, string(header), string(info), path, o)
}

// build decodes the data section against the parsed configuration and
// assembles the Record. Either every part succeeds or no Record is
// returned.
func build(conf *cfg.Config, raw []byte, header, info, path string, o options) (*Record, error) {
	if conf.Format == cfg.FormatASCII {
		decoded, err := decodeText(raw, o.encoding)
		if err != nil {
			return nil, err
		}
		raw = decoded
	}

	datOpts := []dat.Option{dat.WithLogger(o.log)}
	if o.contiguous {
		datOpts = append(datOpts, dat.WithContiguousStorage())
	}
	set, err := dat.Decode(raw, conf, datOpts...)
	if err != nil {
		return nil, err
	}
	return &Record{conf: conf, samples: set, header: header, info: info, path: path}, nil
}

func parseConfig(text []byte, o options) (*cfg.Config, error) {
	popts := []cfg.ParserOption{cfg.WithLogger(o.log)}
	if o.strict {
		popts = append(popts, cfg.WithStrictRevision())
	}
	return cfg.NewParser(popts...).Parse(bytes.NewReader(text))
}

// siblingPath replaces the extension of path with ext, keeping the
// upper-case spelling when the original extension is upper-case.
func siblingPath(path, ext string) string {
	old := filepath.Ext(path)
	if old == "" {
		return path + "." + ext
	}
	if old == strings.ToUpper(old) && old != strings.ToLower(old) {
		ext = strings.ToUpper(ext)
	}
	return strings.TrimSuffix(path, old) + "." + ext
}

// readSidecar reads an optional text section. An explicit path must
// exist; the derived sibling may be absent.
func readSidecar(explicit, sibling string, o options) (string, error) {
	path := explicit
	if path == "" {
		path = sibling
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if explicit == "" && os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	text, err := decodeText(data, o.encoding)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// validateModuleVersions checks that all module versions are compatible.
// Returns an error if any module version is below its minimum compatible version.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"cfg": {cfg.Version, cfg.MinCompatibleVersion},
		"dat": {dat.Version, dat.MinCompatibleVersion},
		"cff": {cff.Version, cff.MinCompatibleVersion},
		"log": {log.Version, log.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}

	return nil
}

// isVersionCompatible checks if version >= minVersion using semantic versioning.
// Assumes versions are in format "major.minor.patch".
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
