package badger

import "encoding/binary"

// makePrefix returns the key prefix for an item kind.
// Format: kind:
func makePrefix(kind string) []byte {
	return []byte(kind + ":")
}

// makeItemKey generates the key for an item.
// Format: kind:<8-byte id>. The sign bit is flipped and the id written
// BigEndian so lexicographic key order matches numeric id order.
func makeItemKey(kind string, id int) []byte {
	prefix := makePrefix(kind)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id)^(1<<63))
	return buf
}

// parseItemKey extracts the id from a key produced by makeItemKey.
func parseItemKey(kind string, key []byte) int {
	raw := binary.BigEndian.Uint64(key[len(makePrefix(kind)):])
	return int(raw ^ (1 << 63))
}
