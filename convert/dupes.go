package convert

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"

	"badc0de.net/pkg/go-goldsrc/spr"
)

func frameDigest(f *spr.Frame) uint64 {
	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[:4], uint32(f.Width()))
	binary.LittleEndian.PutUint32(dims[4:], uint32(f.Height()))
	d := xxhash.New()
	d.Write(dims[:])
	d.Write(f.Data())
	return d.Sum64()
}

func sameFrame(a, b *spr.Frame) bool {
	return a.Width() == b.Width() && a.Height() == b.Height() && bytes.Equal(a.Data(), b.Data())
}

// DuplicateFrames returns groups of indices of frames with identical size and
// pixels. Only groups of two or more frames are returned, ordered by their
// first index. Origins and groups are not compared.
func DuplicateFrames(s *spr.Sprite) [][]int {
	buckets := map[uint64][][]int{}
	for i, f := range s.Frames {
		if f == nil {
			continue
		}
		d := frameDigest(f)
		found := false
		for j, group := range buckets[d] {
			if sameFrame(s.Frames[group[0]], f) {
				buckets[d][j] = append(group, i)
				found = true
				break
			}
		}
		if !found {
			buckets[d] = append(buckets[d], []int{i})
		}
	}

	var dupes [][]int
	for _, groups := range buckets {
		for _, group := range groups {
			if len(group) > 1 {
				dupes = append(dupes, group)
			}
		}
	}
	sort.Slice(dupes, func(i, j int) bool { return dupes[i][0] < dupes[j][0] })
	return dupes
}
