package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udecbot/horarios/model"
)

func practice(day, block, room string) RawEntry {
	return RawEntry{Kind: model.Practice, Day: day, Block: block, Classroom: room}
}

func total(sections [][]RawEntry) int {
	n := 0
	for _, s := range sections {
		n += len(s)
	}
	return n
}

func TestDistributeBroadcast(t *testing.T) {
	theory := RawEntry{Kind: model.Theory, Day: "Lu", Block: "1-2", Classroom: "A"}
	test := RawEntry{Kind: model.Test, Day: "Sa", Block: "1", Classroom: "B"}
	tests := []RawEntry{test, test}

	// Одно занятие и тесты достаются всем секциям
	got := Distribute(append([]RawEntry{theory}, tests...), 3, DistributeOptions{})
	require.Len(t, got, 3)
	for _, s := range got {
		assert.Equal(t, []RawEntry{theory, test, test}, s)
	}

	// Одна секция получает всё
	entries := []RawEntry{practice("Lu", "1", "A"), practice("Ma", "1", "B")}
	got = Distribute(entries, 1, DistributeOptions{})
	assert.Equal(t, [][]RawEntry{entries}, got)
}

func TestDistributeEvenChunks(t *testing.T) {
	entries := []RawEntry{
		practice("Lu", "1", "A"),
		practice("Lu", "1", "B"),
		practice("Ma", "2", "A"),
		practice("Ma", "2", "B"),
	}

	got := Distribute(entries, 2, DistributeOptions{})
	require.Len(t, got, 2)
	assert.Equal(t, 4, total(got))

	// Один слот в куске, подгруппы по порядку
	assert.Equal(t, []int{1, 2}, []int{got[0][0].Group, got[0][1].Group})
	assert.Equal(t, "Lu", got[0][0].Day)
	assert.Equal(t, "Ma", got[1][0].Day)
	assert.Equal(t, []int{1, 2}, []int{got[1][0].Group, got[1][1].Group})

	// Исходные записи не меняются
	assert.Equal(t, 0, entries[0].Group)
}

func TestDistributeOneEntryPerSection(t *testing.T) {
	entries := []RawEntry{practice("Lu", "1", "A"), practice("Ma", "2", "B")}

	got := Distribute(entries, 2, DistributeOptions{})
	assert.Equal(t, [][]RawEntry{{entries[0]}, {entries[1]}}, got)
}

func TestDistributeClassroomRuns(t *testing.T) {
	entries := []RawEntry{
		practice("Lu", "1", "A"),
		practice("Lu", "1", "B"),
		practice("Lu", "1", "C"),
		practice("Ma", "2", "A"),
		practice("Ma", "2", "B"),
	}

	got := Distribute(entries, 2, DistributeOptions{})
	require.Len(t, got, 2)
	assert.Len(t, got[0], 3)
	assert.Len(t, got[1], 2)
	assert.Equal(t, len(entries), total(got))
	assert.Equal(t, "A", got[1][0].Classroom)
}

func TestDistributeExtraRunsGoToLastSection(t *testing.T) {
	entries := []RawEntry{
		practice("Lu", "1", "A"),
		practice("Ma", "1", "A"),
		practice("Mi", "1", "A"),
		practice("Ju", "1", "A"),
		practice("Vi", "1", "A"),
	}

	got := Distribute(entries, 2, DistributeOptions{})
	require.Len(t, got, 2)
	assert.Len(t, got[0], 1)
	assert.Len(t, got[1], 4)
	assert.Equal(t, len(entries), total(got))
}

func TestDistributeFewerRunsThanSections(t *testing.T) {
	entries := []RawEntry{
		practice("Lu", "1", "A"),
		practice("Lu", "1", "B"),
		practice("Ma", "1", "A"),
	}

	got := Distribute(entries, 2, DistributeOptions{})
	// 3 % 2 != 0: две серии [A B] и [A]
	assert.Len(t, got[0], 2)
	assert.Len(t, got[1], 1)

	got = Distribute(entries, 4, DistributeOptions{})
	require.Len(t, got, 4)
	assert.Empty(t, got[2])
	assert.Empty(t, got[3])
	assert.Equal(t, len(entries), total(got))
}

func TestDistributeBundleRemainder(t *testing.T) {
	entries := []RawEntry{
		practice("Lu", "1", "A"),
		practice("Ma", "1", "B"),
		practice("Mi", "1", "C"),
		practice("Mi", "1", "D"),
		practice("Mi", "1", "E"),
	}

	got := Distribute(entries, 3, DistributeOptions{BundleRemainder: true})
	require.Len(t, got, 3)
	assert.Len(t, got[0], 1)
	assert.Len(t, got[1], 1)
	assert.Len(t, got[2], 3)
	assert.Equal(t, []int{1, 2, 3}, []int{got[2][0].Group, got[2][1].Group, got[2][2].Group})
	assert.Equal(t, len(entries), total(got))
}

func TestExpand(t *testing.T) {
	got := Expand([]RawEntry{
		{Kind: model.Theory, Day: "Lu/Mi", Block: "1-2/3 a 4", Classroom: "Sala 1"},
		{Kind: model.Practice, Day: "Ju", Block: "5", Classroom: "Lab 101, 102"},
	})

	assert.Equal(t, []model.ScheduleEntry{
		{Kind: model.Theory, Day: model.Monday, Blocks: []int{1, 2}, Classroom: "Sala 1"},
		{Kind: model.Theory, Day: model.Wednesday, Blocks: []int{3, 4}, Classroom: "Sala 1"},
		{Kind: model.Practice, Group: 1, Day: model.Thursday, Blocks: []int{5}, Classroom: "Lab 101"},
		{Kind: model.Practice, Group: 2, Day: model.Thursday, Blocks: []int{5}, Classroom: "Lab 102"},
	}, got)
}

func TestExpandGroups(t *testing.T) {
	// У практики две подгруппы, они сохраняются
	got := Expand([]RawEntry{
		{Kind: model.Practice, Group: 1, Day: "Lu", Block: "1", Classroom: "A"},
		{Kind: model.Practice, Group: 2, Day: "Lu", Block: "1", Classroom: "B"},
		{Kind: model.Lab, Group: 1, Day: "Ma", Block: "2", Classroom: "C"},
	})
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Group)
	assert.Equal(t, 2, got[1].Group)
	// Единственная подгруппа лабораторной убирается
	assert.Equal(t, 0, got[2].Group)
}

func TestExpandTestGetsGroups(t *testing.T) {
	got := Expand([]RawEntry{
		{Kind: model.Test, Day: "Sa", Block: "1", Classroom: "A"},
		{Kind: model.Test, Day: "Sa", Block: "2", Classroom: "B"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Group)
	assert.Equal(t, 2, got[1].Group)
}

func TestExpandPending(t *testing.T) {
	got := Expand([]RawEntry{
		{Kind: model.Theory, Day: "xx", Block: "1", Classroom: "A"},
		{Kind: model.Practice, Day: "Lu", Block: "", Classroom: "A"},
	})
	assert.Equal(t, []model.ScheduleEntry{
		model.PendingEntry(model.Theory, 0),
		model.PendingEntry(model.Practice, 0),
	}, got)

	assert.Equal(t, []model.ScheduleEntry{model.PendingEntry(model.KindNone, 0)}, Expand(nil))
}

func TestDistributionFactorChunking(t *testing.T) {
	// 2 дня и 4 аудитории в одной секции
	entries := []RawEntry{
		practice("Lu", "1", "A"),
		practice("Lu", "1", "B"),
		practice("Ma", "2", "C"),
		practice("Ma", "2", "D"),
	}
	got := Expand(Distribute(entries, 1, DistributeOptions{})[0])
	require.Len(t, got, 4)
	assert.Equal(t, model.Monday, got[0].Day)
	assert.Equal(t, "B", got[1].Classroom)
	assert.Equal(t, model.Tuesday, got[2].Day)
	assert.Equal(t, "D", got[3].Classroom)
}
