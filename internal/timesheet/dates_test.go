package timesheet

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multiYearLog = `commit c2c1354f6e73073f6eb9a2273c550a38f0e624d7
Author: Jim Jones <jim@jones.com>
Date:   Sat, 23 Oct 2021 13:02:36 +0200

    getting month, year and number of days in month from date string

commit bad43e994462238b0470fae8c5af6f1f7d544e18 (origin/feature/redirect-to-onboarding)
Author: Jim Jones <jim@jones.com>
Date:   Thu, 21 Oct 2021 10:06:14 +0200

    testing that it writes to the config file

commit 6604ce77b0dce8f842ea72ca52b3d39212668389
Author: Jim Jones <jim@jones.com>
Date:   Wed, 20 Oct 2021 12:09:16 +0200

    write data to file

commit 9bc3e9720963d6aa06c1fd64cf826c8a0a6570a4
Author: Jim Jones <jim@jones.com>
Date:   Wed, 20 Oct 2021 11:06:17 +0200

    initialise if config isn't found

commit 9bc3e9720963d6aa06c1fd64cf826c8a0a6570a4
Author: Jim Jones <jim@jones.com>
Date:   Wed, 08 Sep 2021 11:06:17 +0200

    initialise if config isn't found

commit 9bc3e9720963d6aa06c1fd64cf826c8a0a6570a4
Author: Jim Jones <jim@jones.com>
Date:   Sat, 1 Aug 2020 11:06:17 +0200

    initialise if config isn't found

commit 9bc3e9720963d6aa06c1fd64cf826c8a0a6570a4
Author: Jim Jones <jim@jones.com>
Date:   Thu, 3 Jan 2019 11:06:17 +0200

    initialise if config isn't found
`

type ymd struct{ year, month, day int }

func triples(idx WorkedDayIndex) []ymd {
	var out []ymd
	for year, months := range idx {
		for month, days := range months {
			for day := range days {
				out = append(out, ymd{year, month, day})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.year != b.year {
			return a.year < b.year
		}
		if a.month != b.month {
			return a.month < b.month
		}
		return a.day < b.day
	})
	return out
}

func TestParseWorkedDaysMultiYear(t *testing.T) {
	idx, err := ParseWorkedDays(multiYearLog)
	require.NoError(t, err)

	// duplicate commits on 20 Oct 2021 collapse to one day
	want := []ymd{
		{2019, 1, 3},
		{2020, 8, 1},
		{2021, 9, 8},
		{2021, 10, 20},
		{2021, 10, 21},
		{2021, 10, 23},
	}
	assert.Equal(t, want, triples(idx))
}

func TestParseWorkedDaysNoHistory(t *testing.T) {
	_, err := ParseWorkedDays("")
	assert.ErrorIs(t, err, ErrNoHistory)

	_, err = ParseWorkedDays("commit abc123\nAuthor: Jim Jones <jim@jones.com>\n\n    no date line here\n")
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestParseWorkedDaysSkipsMalformedDates(t *testing.T) {
	// matches the pattern but is not a real calendar date
	log := `Date:   Mon, 99 Oct 2021 13:02:36 +0200

Date:   Sat, 23 Oct 2021 13:02:36 +0200
`
	idx, err := ParseWorkedDays(log)
	require.NoError(t, err)
	assert.Equal(t, []ymd{{2021, 10, 23}}, triples(idx))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2021, 10))
	assert.Equal(t, 28, DaysInMonth(1989, 2))
	assert.Equal(t, 30, DaysInMonth(1945, 6))
	// leap year
	assert.Equal(t, 29, DaysInMonth(2024, 2))
	assert.Equal(t, 31, DaysInMonth(2021, 12))
}
