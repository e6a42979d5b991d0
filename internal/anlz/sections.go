package anlz

import (
	"encoding/binary"
	"unicode/utf16"

	"github.com/rbxport/rbxport/internal/model"
	"github.com/rbxport/rbxport/internal/waveform"
)

// pmaiHeaderSize is the fixed size of the PMAI file-level header (§4.6):
// magic, len_header, total file length, section count, plus reserved
// padding to round out the 28-byte layout the spec calls for.
const pmaiHeaderSize = 28

// buildPMAI renders the file-level header. totalLen is the size of the
// complete file (PMAI header plus every following section); numSections is
// the count of sections that follow PMAI.
func buildPMAI(totalLen, numSections int) []byte {
	out := make([]byte, 0, pmaiHeaderSize)
	out = append(out, "PMAI"...)
	out = binary.BigEndian.AppendUint32(out, pmaiHeaderSize)
	out = binary.BigEndian.AppendUint32(out, uint32(totalLen))
	out = binary.BigEndian.AppendUint32(out, uint32(numSections))
	out = append(out, make([]byte, pmaiHeaderSize-16)...) // reserved
	return out
}

// buildPPTH builds the absolute path section: a 4-byte payload length
// followed by the UTF-16BE, NUL-terminated path.
func buildPPTH(path string) (section, error) {
	units := utf16.Encode([]rune(path))
	payload := make([]byte, 0, 4+2*len(units)+2)
	strLen := 2*len(units) + 2 // including the NUL terminator
	payload = binary.BigEndian.AppendUint32(payload, uint32(strLen))
	for _, u := range units {
		payload = binary.BigEndian.AppendUint16(payload, u)
	}
	payload = binary.BigEndian.AppendUint16(payload, 0) // NUL terminator
	return newSection("PPTH", commonHeaderSize+4, payload)
}

// buildPVBR builds the VBR seek index: 4-byte constants, 400 u16
// time-to-byte entries, and a trailing u16 constant.
func buildPVBR(entries []model.VBREntry) (section, error) {
	const (
		leadConstant    = 0
		trailConstant   = 0
		entryCount      = 400
	)
	body := make([]byte, 0, 4+2*entryCount+2)
	body = binary.BigEndian.AppendUint32(body, leadConstant)
	for i := 0; i < entryCount; i++ {
		var v uint16
		if i < len(entries) {
			v = uint16(entries[i].Byte)
		}
		body = binary.BigEndian.AppendUint16(body, v)
	}
	body = binary.BigEndian.AppendUint16(body, trailConstant)
	return newSection("PVBR", commonHeaderSize+4, body)
}

// beatgridHeaderSize is the fixed sub-header of a PQTZ section: unknown u32,
// default-tempo u32 (BPM*100) and beat-count u32, for a 24-byte section when
// no beats follow (12-byte common prefix + 12-byte sub-header, matching
// spec.md §8 scenario S6).
const beatgridHeaderSize = 12

// buildPQTZ builds the beatgrid section. If skipBPM is set or there are no
// beats, only the 24-byte header is emitted (beat count 0); the header's
// tempo is 0 when skipBPM is set and tempoBPM*100 otherwise.
func buildPQTZ(tempoBPM float64, beats []model.Beat, skipBPM bool) (section, error) {
	if skipBPM {
		beats = nil
	}
	body := make([]byte, 0, beatgridHeaderSize+8*len(beats))
	body = binary.BigEndian.AppendUint32(body, 0) // unknown
	defaultTempo := uint32(0)
	if !skipBPM {
		defaultTempo = uint32(tempoBPM * 100)
	}
	body = binary.BigEndian.AppendUint32(body, defaultTempo)
	body = binary.BigEndian.AppendUint32(body, uint32(len(beats)))
	for _, b := range beats {
		body = binary.BigEndian.AppendUint16(body, b.BeatInBar)
		body = binary.BigEndian.AppendUint16(body, uint16(defaultTempo))
		body = binary.BigEndian.AppendUint32(body, b.TimeMs)
	}
	return newSection("PQTZ", commonHeaderSize+beatgridHeaderSize, body)
}

func buildPWAV(wf model.WaveformBuffers, overallPeak float64) (section, error) {
	return newSection("PWAV", commonHeaderSize, waveform.PWAV(wf, overallPeak))
}

func buildPWV2(wf model.WaveformBuffers, overallPeak float64) (section, error) {
	return newSection("PWV2", commonHeaderSize, waveform.PWV2(wf, overallPeak))
}

func buildPWV3(wf model.WaveformBuffers, overallPeak float64, durationSeconds int) (section, error) {
	return newSection("PWV3", commonHeaderSize, waveform.PWV3(wf, overallPeak, durationSeconds))
}

func buildPWV4(wf model.WaveformBuffers, overallPeak float64) (section, error) {
	return newSection("PWV4", commonHeaderSize, waveform.PWV4(wf, overallPeak))
}

func buildPWV5(wf model.WaveformBuffers, overallPeak float64, durationSeconds int) (section, error) {
	return newSection("PWV5", commonHeaderSize, waveform.PWV5(wf, overallPeak, durationSeconds))
}
