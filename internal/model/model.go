// Package model defines the frozen input contract (§6.3) between the core
// export encoders and their external collaborators: the audio decoder,
// BPM/key detectors, artwork extractor and library-source parser. Nothing in
// this package performs I/O; it only describes the shape of a library ready
// to be exported.
package model

// LibraryInput is the abstract music-library description handed to
// ExportOrganizer. It is produced entirely by external collaborators.
type LibraryInput struct {
	Tracks     []Track
	Playlists  []Playlist
	Aux        AuxiliaryBlobs
}

// AuxiliaryBlobs holds the opaque, verbatim History/HistoryEntries/
// HistoryPlaylists/Columns table data pages (spec.md §1 Non-goals). Each must
// be exactly one page (4096 bytes).
type AuxiliaryBlobs struct {
	ColumnsPage          [4096]byte
	HistoryPlaylistsPage [4096]byte
	HistoryEntriesPage   [4096]byte
	HistoryPage          [4096]byte
}

// FileType identifies the encoded audio format of a track's file.
type FileType uint16

// Recognized file types. Values follow the DeviceSQL file_type field
// (offset 0x5A of the track row).
const (
	FileTypeMP3  FileType = 1
	FileTypeFLAC FileType = 5
	FileTypeWAV  FileType = 11
	FileTypeAIFF FileType = 12
	FileTypeAAC  FileType = 4
	FileTypeALAC FileType = 9
)

// Track is one entry in the library, as supplied by the library-source
// parser. IDs are 1-indexed and unique within Tracks.
type Track struct {
	ID           int
	Title        string
	ArtistName   string
	AlbumName    string
	GenreName    string
	LabelName    string
	KeyName      string
	ColorIndex   int // 0 = none, else 1..8
	FileType     FileType
	FileSize     uint32
	Bitrate      uint32
	SampleRate   uint32
	SampleDepth  uint16
	Duration     uint16 // seconds
	TrackNumber  uint32
	DiscNumber   uint16
	PlayCount    uint16
	Year         uint16
	Rating       uint8 // 0-5
	DateAdded    string // YYYY-MM-DD
	AudioPath    string // relative, FAT32-safe
	Analysis     AnalysisBundle
	Artwork      *ArtworkPair // nil if none
}

// Beat is one entry of a beatgrid.
type Beat struct {
	TimeMs     uint32
	BeatInBar  uint16 // 1..4
}

// BandPeaks is one window's per-band absolute peak, for the two 3-band color
// waveform representations.
type BandPeaks struct {
	Low, Mid, High float64
}

// WaveformBuffers holds the five pre-windowed PCM peak sequences (§3.1) that
// back the ANLZ waveform tags. Each sequence already has the window count
// its target representation requires: 400 for the monochrome preview, 100
// for the tiny preview, duration*150 for the monochrome detail, a fixed 1200
// for the color preview, and duration*150 for the color detail. Producing
// these sequences (decoding audio, splitting into windows, 3-band filtering)
// is the external audio decoder/analyzer's job; WaveformQuantizer only
// normalizes and quantizes them.
type WaveformBuffers struct {
	Preview      []float64   // len 400
	Tiny         []float64   // len 100
	Detail       []float64   // len duration_seconds*150
	ColorPreview []BandPeaks // len 1200
	ColorDetail  []BandPeaks // len duration_seconds*150
}

// PCMStats carries the single global normalization invariant of §4.6.1:
// overall_peak, the maximum absolute PCM sample across the entire decoded
// stream, shared by all five waveform buffers of the same track.
type PCMStats struct {
	OverallPeak float64
}

// AnalysisBundle is the per-track analysis output (§3.1, §6.3). A zero-value
// bundle (Tempo 0, KeyID 0, no beats, no waveform buffers) represents
// AnalysisUnavailable (§7): the track is still exported with tempo=0, key=0,
// and zero-height (but validly-encoded) waveform stubs.
type AnalysisBundle struct {
	TempoBPM float64 // 0 if unknown
	KeyID    int     // 0 if unknown
	Beats    []Beat
	VBR      []VBREntry
	PCM      PCMStats
	Waveforms WaveformBuffers
}

// VBREntry is one entry of the variable-bitrate time-to-byte lookup table.
type VBREntry struct {
	TimeMs uint32
	Byte   uint32
}

// Playlist is an ordered list of track IDs under a name.
type Playlist struct {
	Name     string
	TrackIDs []int
}

// ArtworkPair is the optional per-track artwork, already rendered to both
// target sizes by the (external) artwork extractor.
type ArtworkPair struct {
	JPEG80  []byte // 80x80
	JPEG240 []byte // 240x240
}
