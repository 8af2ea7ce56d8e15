package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udecbot/horarios/model"
	"github.com/udecbot/horarios/utils"
)

func sampleFile() model.ScheduleFile {
	return model.ScheduleFile{
		UpdatedAt: 1709650920000,
		Subjects: []model.Subject{
			{
				Code:             503208,
				Name:             "Programación Orientada a Objetos",
				Credits:          utils.IntPtr(5),
				Section:          1,
				TheoreticalHours: utils.IntPtr(2),
				PracticalHours:   utils.IntPtr(2),
				Careers: []model.Career{
					{Name: "Ingeniería Civil Informática", Semester: 4},
					{AnyCivilSpecialty: true},
				},
				Schedule: []model.ScheduleEntry{
					{Kind: model.Theory, Day: model.Monday, Blocks: []int{3, 4}, Classroom: "Sala A"},
					{Kind: model.Practice, Group: 2, Day: model.Friday, Blocks: []int{9}, Classroom: "LAB 1-2"},
					model.PendingEntry(model.Lab, 1),
					model.PendingEntry(model.KindNone, 0),
				},
				Professors: []model.Professor{
					{Kind: model.Theory, Name: "Ana Soto"},
					{Kind: model.Lab, Name: "Luis Díaz"},
				},
			},
			{
				Code:    527140,
				Name:    "",
				Section: 255,
			},
		},
	}
}

func TestCodecRoundTrip(t *testing.T) {
	file := sampleFile()

	data, err := Codec{Hours: true}.Encode(file)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, file, decoded)
}

func TestCodecWithoutHoursDropsThem(t *testing.T) {
	file := sampleFile()

	data, err := Codec{}.Encode(file)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	want := sampleFile()
	want.Subjects[0].TheoreticalHours = nil
	want.Subjects[0].PracticalHours = nil
	assert.Equal(t, want, decoded)
}

func TestCodecLayout(t *testing.T) {
	file := model.ScheduleFile{
		UpdatedAt: 1,
		Subjects: []model.Subject{{
			Code:     123456,
			Name:     "A",
			Section:  2,
			Schedule: []model.ScheduleEntry{{Kind: model.Theory, Day: model.Tuesday, Blocks: []int{1}, Classroom: "B"}},
		}},
	}

	data, err := Codec{}.Encode(file)
	require.NoError(t, err)

	want := []byte{
		Version, 0,
		1, 0, 0, 0, 0, 0, 0, 0, // updatedAt
		1, 0, // subjectCount
		0x40, 0xe2, 0x01, 0x00, // code 123456
		'A', 0,
		0xff, // credits absent
		2,    // section
		0,    // careers
		1,    // schedule entries
		0, 0, 0xff, 1, 1, 1, 'B', 0,
		0, // professors
	}
	assert.Equal(t, want, data)
}

func TestCodecEmptyFile(t *testing.T) {
	data, err := Codec{}.Encode(model.ScheduleFile{})
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, int64(0), decoded.UpdatedAt)
	assert.Empty(t, decoded.Subjects)
}

func TestCodecRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		subject model.Subject
	}{
		{"credits", model.Subject{Credits: utils.IntPtr(128)}},
		{"section", model.Subject{Section: 256}},
		{"negative section", model.Subject{Section: -1}},
		{"group", model.Subject{Schedule: []model.ScheduleEntry{{Group: 200, Blocks: []int{1}}}}},
		{"block", model.Subject{Schedule: []model.ScheduleEntry{{Blocks: []int{300}}}}},
		{"day", model.Subject{Schedule: []model.ScheduleEntry{{Day: 7, Blocks: []int{1}}}}},
		{"nul in name", model.Subject{Name: "a\x00b"}},
		{"too many careers", model.Subject{Careers: make([]model.Career, 256)}},
		{"professor without type", model.Subject{Professors: []model.Professor{{Kind: model.KindNone, Name: "X"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Codec{Hours: true}.Encode(model.ScheduleFile{Subjects: []model.Subject{tt.subject}})
			assert.ErrorIs(t, err, ErrRange)
			assert.ErrorIs(t, Codec{Hours: true}.Check(tt.subject), ErrRange)
		})
	}
}

func TestCodecCheck(t *testing.T) {
	for _, s := range sampleFile().Subjects {
		assert.NoError(t, Codec{}.Check(s), s.Key())
		assert.NoError(t, Codec{Hours: true}.Check(s), s.Key())
	}
}

func TestDecodeVersionMismatch(t *testing.T) {
	data, err := Codec{}.Encode(sampleFile())
	require.NoError(t, err)

	data[0] = Version + 1
	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrVersion)
}

func TestDecodeTruncated(t *testing.T) {
	data, err := Codec{Hours: true}.Encode(sampleFile())
	require.NoError(t, err)

	for _, n := range []int{0, 1, 5, 12, len(data) / 2, len(data) - 1} {
		_, err := Decode(data[:n])
		assert.ErrorIs(t, err, ErrTruncated, "prefix of %d bytes", n)
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	data, err := Codec{}.Encode(sampleFile())
	require.NoError(t, err)

	_, err = Decode(append(data, 0))
	assert.Error(t, err)
}

func TestReaderCursor(t *testing.T) {
	w := &Writer{}
	w.Uint16(0xbeef)
	require.NoError(t, w.CString("hola"))
	w.Int8(-1)

	r := NewReader(w.Bytes())
	v, err := r.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xbeef), v)
	assert.Equal(t, 2, r.Offset)

	s, err := r.CString()
	require.NoError(t, err)
	assert.Equal(t, "hola", s)
	assert.Equal(t, 7, r.Offset)

	i, err := r.Int8()
	require.NoError(t, err)
	assert.Equal(t, int8(-1), i)
	assert.Zero(t, r.Remaining())

	_, err = r.Uint8()
	assert.ErrorIs(t, err, ErrTruncated)
}
