package corpusdex

import (
	"encoding/binary"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Version tags recognized in an envelope. Only VersionStork3 is actually
// decodable by this implementation; see SPEC_FULL.md §4.A for why
// VersionStork4 (BZip2-compressed) is accepted as a known tag but not
// compiled in.
const (
	VersionStork3 = "stork-3"
	VersionStork4 = "stork-4"
)

// EncodeIndex serializes idx as a stork-3 envelope: a version-tagged,
// length-prefixed MessagePack payload, per spec.md §3 "Envelope" and §4.A.
func EncodeIndex(idx *Index) ([]byte, error) {
	payload, err := msgpack.Marshal(wireIndexFromIndex(idx))
	if err != nil {
		return nil, err
	}
	return encodeEnvelope(VersionStork3, payload), nil
}

// encodeEnvelope writes the outer [u64 BE version_len][version][u64 BE
// payload_len][payload] framing described in spec.md §3.
func encodeEnvelope(version string, payload []byte) []byte {
	out := make([]byte, 0, 8+len(version)+8+len(payload))
	out = appendU64(out, uint64(len(version)))
	out = append(out, version...)
	out = appendU64(out, uint64(len(payload)))
	out = append(out, payload...)
	return out
}

func appendU64(b []byte, v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return append(b, buf[:]...)
}

// DecodeIndex parses a stork-3 envelope and its MessagePack payload into an
// Index. Bytes beyond the declared payload are sidecar chunks, per spec.md
// §3, and are ignored here — this reader does not understand sidecars.
func DecodeIndex(data []byte) (*Index, error) {
	version, payload, _, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}

	switch version {
	case VersionStork3:
		var wire wireIndex
		if err := msgpack.Unmarshal(payload, &wire); err != nil {
			return nil, &IndexParseError{Kind: ErrPayloadDecode, Version: version, Underlying: err}
		}
		idx := wire.toIndex()
		if err := idx.Validate(); err != nil {
			return nil, &IndexParseError{Kind: ErrPayloadDecode, Version: version, Underlying: err}
		}
		return idx, nil
	case VersionStork4:
		return nil, &IndexParseError{Kind: ErrNotCompiledWithFeature, Version: version}
	default:
		return nil, &IndexParseError{Kind: ErrUnknownFile, Version: version}
	}
}

// decodeEnvelope reads the version tag and payload, returning any bytes
// remaining after the declared payload (sidecar chunks, per spec.md §3).
func decodeEnvelope(data []byte) (version string, payload []byte, rest []byte, err error) {
	versionLen, data, err := readU64Prefixed(data)
	if err != nil {
		return "", nil, nil, err
	}
	if uint64(len(data)) < versionLen {
		return "", nil, nil, &IndexParseError{Kind: ErrTruncatedEnvelope, Underlying: fmt.Errorf("version tag truncated")}
	}
	version = string(data[:versionLen])
	data = data[versionLen:]

	payloadLen, data, err := readU64Prefixed(data)
	if err != nil {
		return "", nil, nil, err
	}
	if uint64(len(data)) < payloadLen {
		return "", nil, nil, &IndexParseError{Kind: ErrTruncatedEnvelope, Version: version, Underlying: fmt.Errorf("payload truncated")}
	}
	payload = data[:payloadLen]
	rest = data[payloadLen:]
	return version, payload, rest, nil
}

// readU64Prefixed reads the big-endian u64 length prefix itself (not the
// length it describes) and returns the remaining bytes.
func readU64Prefixed(data []byte) (uint64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, &IndexParseError{Kind: ErrTruncatedEnvelope, Underlying: fmt.Errorf("missing length prefix")}
	}
	return binary.BigEndian.Uint64(data[:8]), data[8:], nil
}

// AppendSidecar appends another length-prefixed frame after envelope's
// declared payload, per spec.md §3. Readers that don't understand sidecars
// (like DecodeIndex) ignore trailing frames.
func AppendSidecar(envelope []byte, sidecar []byte) []byte {
	out := make([]byte, 0, len(envelope)+8+len(sidecar))
	out = append(out, envelope...)
	out = appendU64(out, uint64(len(sidecar)))
	out = append(out, sidecar...)
	return out
}

// --- wire representation: msgpack needs concrete, map-keyed types ---

type wireIndex struct {
	Entries    []Entry                  `msgpack:"entries"`
	Containers map[string]wireContainer `msgpack:"containers"`
	Settings   OutputConfig             `msgpack:"settings"`
}

type wireContainer struct {
	Entries map[int][]Posting `msgpack:"entries"`
	Aliases []string          `msgpack:"aliases"`
}

func wireIndexFromIndex(idx *Index) wireIndex {
	w := wireIndex{
		Entries:    idx.Entries,
		Containers: make(map[string]wireContainer, len(idx.Containers)),
		Settings:   idx.Settings,
	}
	for word, c := range idx.Containers {
		entries := make(map[int][]Posting, len(c.Entries))
		for entryIdx, postings := range c.Entries {
			entries[int(entryIdx)] = postings
		}
		w.Containers[word] = wireContainer{Entries: entries, Aliases: c.Aliases}
	}
	return w
}

func (w wireIndex) toIndex() *Index {
	idx := &Index{
		Entries:    w.Entries,
		Containers: make(map[string]*Container, len(w.Containers)),
		Settings:   w.Settings,
	}
	for word, wc := range w.Containers {
		entries := make(map[EntryIndex][]Posting, len(wc.Entries))
		for entryIdx, postings := range wc.Entries {
			entries[EntryIndex(entryIdx)] = postings
		}
		idx.Containers[word] = &Container{Entries: entries, Aliases: wc.Aliases}
	}
	return idx
}
