package dbi

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeModuleRecord(modIndex, symStream uint16, modName, objName string) []byte {
	rec := make([]byte, ModuleInfoFixedSize)
	binary.LittleEndian.PutUint16(rec[0x14:], modIndex)
	binary.LittleEndian.PutUint16(rec[0x22:], symStream)

	buf := append([]byte{}, rec...)
	buf = append(buf, []byte(modName)...)
	buf = append(buf, 0)
	buf = append(buf, []byte(objName)...)
	buf = append(buf, 0)
	if pad := len(buf) % 4; pad != 0 {
		buf = append(buf, make([]byte, 4-pad)...)
	}
	return buf
}

func TestParseModules(t *testing.T) {
	var data []byte
	data = append(data, encodeModuleRecord(0, 10, "main.obj", "/src/main.obj")...)
	data = append(data, encodeModuleRecord(1, 11, "util.obj", "/src/util.obj")...)

	mods, err := ParseModules(data)
	require.NoError(t, err)
	require.Len(t, mods, 2)

	require.Equal(t, uint16(0), mods[0].ModuleIndex)
	require.Equal(t, uint16(10), mods[0].ModuleSymStream)
	require.Equal(t, "main.obj", mods[0].ModuleName)
	require.Equal(t, "/src/main.obj", mods[0].ObjFileName)

	require.Equal(t, uint16(1), mods[1].ModuleIndex)
	require.Equal(t, uint16(11), mods[1].ModuleSymStream)
	require.Equal(t, "util.obj", mods[1].ModuleName)
	require.Equal(t, "/src/util.obj", mods[1].ObjFileName)
}

func TestParseModulesTruncated(t *testing.T) {
	data := encodeModuleRecord(0, 10, "main.obj", "/src/main.obj")
	_, err := ParseModules(data[:ModuleInfoFixedSize-1])
	require.ErrorIs(t, err, ErrTruncatedHeader)
}
