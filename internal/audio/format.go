package audio

import "math/bits"

// Format identifies an audio sample format. The high byte is the main format;
// for PCM the low bits select the sample layout.
type Format uint32

// Format sentinel and masks.
const (
	FormatDefault    Format = 0x0
	FormatInvalid    Format = 0xFFFFFFFF
	FormatMainMask   Format = 0xFF000000
	FormatSubMask    Format = 0x00FFFFFF
	formatMainPCM    Format = 0x0
	formatSubPCM16   Format = 0x1
	formatSubPCM8    Format = 0x2
	formatSubPCM32   Format = 0x3
	formatSubPCM824  Format = 0x4
	formatSubPCMFlt  Format = 0x5
	formatSubPCM24P  Format = 0x6
)

// PCM formats.
const (
	FormatPCM16Bit       = formatMainPCM | formatSubPCM16
	FormatPCM8Bit        = formatMainPCM | formatSubPCM8
	FormatPCM32Bit       = formatMainPCM | formatSubPCM32
	FormatPCM8_24Bit     = formatMainPCM | formatSubPCM824
	FormatPCMFloat       = formatMainPCM | formatSubPCMFlt
	FormatPCM24BitPacked = formatMainPCM | formatSubPCM24P
)

// Encoded (compressed) formats.
const (
	FormatMP3         Format = 0x01000000
	FormatAMRNB       Format = 0x02000000
	FormatAAC         Format = 0x04000000
	FormatHEAACV1     Format = 0x05000000
	FormatVorbis      Format = 0x07000000
	FormatOpus        Format = 0x08000000
	FormatAC3         Format = 0x09000000
	FormatEAC3        Format = 0x0A000000
	FormatDTS         Format = 0x0B000000
	FormatDTSHD       Format = 0x0C000000
	FormatIEC61937    Format = 0x0D000000
	FormatDolbyTrueHD Format = 0x0E000000
	FormatFLAC        Format = 0x1B000000
	FormatALAC        Format = 0x1C000000
	FormatSBC         Format = 0x1F000000
	FormatAPTX        Format = 0x20000000
	FormatAPTXHD      Format = 0x21000000
	FormatAC4         Format = 0x22000000
	FormatLDAC        Format = 0x23000000
	FormatMAT         Format = 0x24000000
)

// Main returns the main format (high byte).
func (f Format) Main() Format {
	return f & FormatMainMask
}

// IsLinearPCM reports whether f is a concrete linear PCM layout.
func (f Format) IsLinearPCM() bool {
	return f != FormatDefault && f.Main() == formatMainPCM && f&FormatSubMask <= formatSubPCM24P
}

// pcmQuality ranks PCM layouts from worst to best; non-PCM formats rank 0.
var pcmQuality = map[Format]int{
	FormatPCM8Bit:        1,
	FormatPCM16Bit:       2,
	FormatPCM24BitPacked: 3,
	FormatPCM8_24Bit:     4,
	FormatPCM32Bit:       5,
	FormatPCMFloat:       6,
}

// BetterThan reports whether f is a strictly better pick than other when
// choosing a mix format. PCM layouts are ranked by precision; any concrete
// format beats FormatDefault; otherwise the existing choice is kept.
func (f Format) BetterThan(other Format) bool {
	if other == FormatDefault {
		return f != FormatDefault
	}
	return pcmQuality[f] > pcmQuality[other]
}

// ChannelMask is a bitmask of speaker positions for output, or capture
// channels for input.
type ChannelMask uint32

// Channel masks.
const (
	ChannelNone        ChannelMask = 0x0
	ChannelOutMono     ChannelMask = 0x1
	ChannelOutStereo   ChannelMask = 0x3
	ChannelOutQuad     ChannelMask = 0x33
	ChannelOut5Point1  ChannelMask = 0x3F
	ChannelOut7Point1  ChannelMask = 0x63F
	ChannelInMono      ChannelMask = 0x10
	ChannelInStereo    ChannelMask = 0xC
	ChannelInFrontBack ChannelMask = 0x30
)

// Count returns the number of channels in the mask.
func (m ChannelMask) Count() int {
	return bits.OnesCount32(uint32(m))
}
