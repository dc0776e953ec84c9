package device

import (
	"cmp"
	"strings"

	"github.com/nerrad567/gray-logic-audio/internal/audio"
)

// Compare defines the order registries keep their members in. It returns a
// negative value when a sorts before b.
//
// Keys, in order:
//  1. type, by audio.ComparePriority
//  2. id, higher first, when either device has one
//  3. address, ascending, when either device has one
//  4. construction sequence, older first
//
// Two distinct devices never compare equal.
func Compare(a, b *Device) int {
	if a == b {
		return 0
	}
	if a.deviceType != b.deviceType {
		return audio.ComparePriority(a.deviceType, b.deviceType)
	}
	if (a.id != 0 || b.id != 0) && a.id != b.id {
		return cmp.Compare(b.id, a.id)
	}
	if (a.address != "" || b.address != "") && a.address != b.address {
		return strings.Compare(a.address, b.address)
	}
	return cmp.Compare(a.seq, b.seq)
}
