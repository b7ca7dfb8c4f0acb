package sourcemap

import (
	"sort"

	"github.com/livemark/preview/internal/loc"
)

// A LineOffsetTable records the byte offset at which one line starts.
type LineOffsetTable struct {
	ByteOffsetToStartOfLine int
}

// GenerateLineOffsetTables walks the source once and records the start
// offset of every line. A "\r\n" pair counts as a single terminator.
func GenerateLineOffsetTables(contents string, approximateLineCount int) []LineOffsetTable {
	tables := make([]LineOffsetTable, 0, approximateLineCount)
	tables = append(tables, LineOffsetTable{ByteOffsetToStartOfLine: 0})
	for i := 0; i < len(contents); i++ {
		switch contents[i] {
		case '\n':
			tables = append(tables, LineOffsetTable{ByteOffsetToStartOfLine: i + 1})
		case '\r':
			if i+1 < len(contents) && contents[i+1] == '\n' {
				continue
			}
			tables = append(tables, LineOffsetTable{ByteOffsetToStartOfLine: i + 1})
		}
	}
	return tables
}

type ChunkBuilder struct {
	lineOffsetTables []LineOffsetTable
}

func MakeChunkBuilder(sourceMap []byte, lineOffsetTables []LineOffsetTable) ChunkBuilder {
	return ChunkBuilder{lineOffsetTables: lineOffsetTables}
}

// GetLineAndColumnForLocation maps a byte offset to a 1-based line and
// 0-based column.
func (b ChunkBuilder) GetLineAndColumnForLocation(l loc.Loc) [2]int {
	tables := b.lineOffsetTables
	i := sort.Search(len(tables), func(n int) bool {
		return tables[n].ByteOffsetToStartOfLine > l.Start
	})
	if i == 0 {
		i = 1
	}
	return [2]int{i, l.Start - tables[i-1].ByteOffsetToStartOfLine}
}
