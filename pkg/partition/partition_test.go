package partition

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gradslides/pkg/roster"
)

func rec(id, program, seatCode, hon string, s roster.Session) roster.Record {
	return roster.Record{StudentID: id, FullName: "N" + id, Program: program, SeatCode: seatCode, Honors: hon, Session: s}
}

func ids(rs []roster.Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.StudentID
	}
	return out
}

func names(ps []Partition) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name()
	}
	return out
}

func TestBuildNested(t *testing.T) {
	m, a := roster.Morning, roster.Afternoon
	records := []roster.Record{
		rec("1", "CS", "2.1.R", "", a),
		rec("2", "CS", "1.1.L", "Cumlaude", m),
		rec("3", "CS", "1.2.R", "", m),
		rec("4", "EE", "1.3.L", "Summa Cumlaude", m),
		rec("5", "CS", "3.1.L", "", m),
		rec("6", "CS", "1.1.L", "summa cumlaude", m),
		rec("7", "CS", "bad", "", m),
		rec("8", "Bio", "1.1.X", "", m),
		rec("9", "CS", "1.5.L", "cumlaude", m),
	}

	parts, warnings := Build(records, Options{})
	assert.Empty(t, warnings)

	assert.Equal(t, []string{
		"morning/summa",
		"morning/CS/L",
		"morning/CS/R",
		"morning/CS/Z",
		"morning/Bio/X",
		"afternoon/CS/R",
	}, names(parts))

	assert.Equal(t, KindSumma, parts[0].Kind)
	assert.Equal(t, []string{"6", "4"}, ids(parts[0].Records), "summa ordered by seat across programs")
	assert.Equal(t, []string{"2", "9", "5"}, ids(parts[1].Records), "cumlaude first, then seat")
	assert.Equal(t, []string{"3"}, ids(parts[2].Records))
	assert.Equal(t, []string{"7"}, ids(parts[3].Records), "malformed seat lands on side Z")
	assert.Equal(t, "CS", parts[1].Program)
	assert.Equal(t, "L", parts[1].Side)
}

func TestBuildCompleteness(t *testing.T) {
	var records []roster.Record
	sides := []string{"L", "R", "C", ""}
	hon := []string{"", "Cumlaude", "Summa Cumlaude", "Sangat Memuaskan"}
	for i := 0; i < 40; i++ {
		code := fmt.Sprintf("%d.%d.%s", i%5+1, i%7+1, sides[i%4])
		s := roster.Morning
		if i%3 == 0 {
			s = roster.Afternoon
		}
		records = append(records, rec(fmt.Sprint(i), []string{"A", "B", "C"}[i%3], code, hon[i%4], s))
	}

	for _, structure := range Structures {
		t.Run(string(structure), func(t *testing.T) {
			parts, _ := Build(records, Options{Structure: structure})
			seen := map[string]int{}
			for _, p := range parts {
				require.NotZero(t, p.Len(), "empty partition %s", p.Name())
				for _, r := range p.Records {
					seen[r.StudentID]++
					if structure == Nested && p.Kind == KindProgram {
						assert.NotEqual(t, "Summa Cumlaude", r.Honors, "summa duplicated into %s", p.Name())
					}
				}
			}
			assert.Len(t, seen, len(records))
			for id, n := range seen {
				assert.Equal(t, 1, n, "record %s appears %d times", id, n)
			}
		})
	}
}

func TestBuildDropsBlankProgram(t *testing.T) {
	records := []roster.Record{
		rec("1", "", "1.1.L", "", roster.Morning),
		rec("2", "nan", "1.1.L", "Cumlaude", roster.Morning),
		rec("3", "", "1.1.L", "Summa Cumlaude", roster.Morning),
		rec("4", "CS", "1.1.L", "", roster.Morning),
	}

	parts, warnings := Build(records, Options{})
	assert.Len(t, warnings, 2)
	assert.Equal(t, []string{"morning/summa", "morning/CS/L"}, names(parts),
		"summa graduates are kept regardless of program")

	flatParts, flatWarnings := Build(records, Options{Structure: Flat})
	assert.Len(t, flatWarnings, 3)
	assert.Equal(t, []string{"morning/CS"}, names(flatParts))
}

func TestBuildFlat(t *testing.T) {
	records := []roster.Record{
		rec("1", "CS", "2.1.R", "", roster.Morning),
		rec("2", "CS", "1.1.L", "Summa Cumlaude", roster.Morning),
		rec("3", "EE", "1.1.L", "", roster.Morning),
		rec("4", "CS", "1.2.L", "Cumlaude", roster.Morning),
	}
	parts, _ := Build(records, Options{Structure: Flat})
	require.Len(t, parts, 2)
	assert.Equal(t, []string{"2", "4", "1"}, ids(parts[0].Records), "seat order only, all tiers")
	assert.Empty(t, parts[0].Side)
}

func TestSortIsStable(t *testing.T) {
	records := []roster.Record{
		rec("a", "CS", "1.1.L", "Cumlaude", roster.Morning),
		rec("b", "CS", "1.1.L", "", roster.Morning),
		rec("c", "CS", "1.1.L", "Cumlaude", roster.Morning),
		rec("d", "CS", "", "", roster.Morning),
		rec("e", "CS", "x", "", roster.Morning),
		rec("f", "CS", "1.1.L", "", roster.Morning),
	}

	SortByPriority(records)
	assert.Equal(t, []string{"a", "c", "b", "f", "d", "e"}, ids(records))

	SortBySeat(records)
	assert.Equal(t, []string{"a", "c", "b", "f", "d", "e"}, ids(records))
}

func TestCompareSides(t *testing.T) {
	assert.Negative(t, CompareSides("L", "R"))
	assert.Negative(t, CompareSides("R", "A"))
	assert.Negative(t, CompareSides("A", "Z"))
	assert.Zero(t, CompareSides("C", "C"))
}

func TestParseStructure(t *testing.T) {
	s, err := ParseStructure(" Flat ")
	require.NoError(t, err)
	assert.Equal(t, Flat, s)
	_, err = ParseStructure("tree")
	assert.Error(t, err)
}

func ExampleBuild() {
	records := []roster.Record{
		{StudentID: "1", Program: "CS", SeatCode: "1.1.L", Honors: "Cumlaude", Session: roster.Morning},
		{StudentID: "2", Program: "CS", SeatCode: "1.2.R", Session: roster.Morning},
		{StudentID: "3", Program: "EE", SeatCode: "1.3.L", Honors: "Summa Cumlaude", Session: roster.Morning},
	}
	parts, _ := Build(records, Options{})
	for _, p := range parts {
		fmt.Println(p.Name(), p.Len())
	}
	// Output:
	// morning/summa 1
	// morning/CS/L 1
	// morning/CS/R 1
}
