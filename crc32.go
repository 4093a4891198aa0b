package carquet

import "hash/crc32"

// pageCRC computes the IEEE CRC32 of a page's compressed body, matching the
// polynomial/reflection/xorout the parquet format uses: this is exactly
// hash/crc32's default IEEE table, so no third-party CRC implementation is
// warranted here.
func pageCRC(compressed []byte) uint32 {
	return crc32.ChecksumIEEE(compressed)
}
