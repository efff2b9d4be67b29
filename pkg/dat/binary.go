package dat

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gridtrace/comtrade/pkg/cfg"
	"github.com/gridtrace/comtrade/pkg/log"
)

// analogConverter turns one raw little-endian analog value into an
// engineering-unit sample, or NaN for the encoding's missing marker.
type analogConverter func(raw []byte, ch cfg.AnalogChannel, rev cfg.Revision) float64

// binaryDecoder reads the three fixed-width encodings. Every row is a
// 4-byte sample number, a 4-byte timestamp, one analog value per
// channel and one 16-bit word per group of 16 status channels, all
// little-endian.
type binaryDecoder struct {
	opts        options
	analogBytes int
	convert     analogConverter
}

func (d *binaryDecoder) Decode(data []byte, conf *cfg.Config) (*SampleSet, error) {
	na, nd := conf.AnalogCount(), conf.StatusCount()
	groups := (nd + 15) / 16
	rowLen := 8 + na*d.analogBytes + 2*groups

	if len(data)%rowLen != 0 {
		return nil, fmt.Errorf("%w: %d data bytes not divisible by row length %d", ErrMalformedData, len(data), rowLen)
	}
	rows := len(data) / rowLen
	total := conf.TotalSamples()
	if rows < total {
		return nil, fmt.Errorf("%w: %d sample rows, configuration declares %d", ErrMalformedData, rows, total)
	}
	if rows > total {
		d.opts.log.Warn("data section has extra sample rows, ignoring",
			log.Int("extra", rows-total), log.Int("declared", total))
	}

	set := newSampleSet(conf, total, d.opts.contiguous)
	clock := newSampleClock(conf)

	for pos := 0; pos < total; pos++ {
		row := data[pos*rowLen : (pos+1)*rowLen]
		rawTS := binary.LittleEndian.Uint32(row[4:8])
		t, err := clock.at(pos, float64(rawTS))
		if err != nil {
			return nil, err
		}
		set.Time[pos] = t

		off := 8
		for ch := 0; ch < na; ch++ {
			set.Analog[ch][pos] = d.convert(row[off:off+d.analogBytes], conf.AnalogChannels[ch], conf.Revision)
			off += d.analogBytes
		}
		for g := 0; g < groups; g++ {
			word := binary.LittleEndian.Uint16(row[off : off+2])
			off += 2
			for bit := 0; bit < 16 && g*16+bit < nd; bit++ {
				set.Status[g*16+bit][pos] = int32(word >> bit & 1)
			}
		}
	}

	d.opts.log.Debug("data section decoded",
		log.Int("row_bytes", rowLen),
		log.Int("samples", total),
		log.Int("analog", na),
		log.Int("status", nd))
	return set, nil
}

func int16Sample(raw []byte, ch cfg.AnalogChannel, rev cfg.Revision) float64 {
	v := binary.LittleEndian.Uint16(raw)
	if missingInt16(v, rev) {
		return math.NaN()
	}
	return ch.Scale*float64(int16(v)) + ch.Offset
}

func int32Sample(raw []byte, ch cfg.AnalogChannel, rev cfg.Revision) float64 {
	v := binary.LittleEndian.Uint32(raw)
	if missingInt32(v) {
		return math.NaN()
	}
	return ch.Scale*float64(int32(v)) + ch.Offset
}

// float32Sample passes values through unscaled: the float encoding
// already carries engineering units.
func float32Sample(raw []byte, _ cfg.AnalogChannel, _ cfg.Revision) float64 {
	v := math.Float32frombits(binary.LittleEndian.Uint32(raw))
	if missingFloat32(v) {
		return math.NaN()
	}
	return float64(v)
}
