package stats_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/okian/scoretable/internal/domain/model"
	stats "github.com/okian/scoretable/internal/domain/stats"
	"github.com/okian/scoretable/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func records(pairs ...any) []model.Record {
	out := make([]model.Record, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.Record{Name: pairs[i].(string), Score: pairs[i+1].(int)})
	}
	return out
}

func TestAggregate(t *testing.T) {
	Convey("Given records for two participants", t, func() {
		in := records("Alice", 80, "Bob", 90, "Alice", 100)

		Convey("When aggregating", func() {
			set := stats.Aggregate(in)

			Convey("Then each participant should be reduced", func() {
				So(len(set), ShouldEqual, 2)
				So(set["Alice"], ShouldResemble, model.ParticipantStats{Name: "Alice", Average: 90, Max: 100, Min: 80, Count: 2})
				So(set["Bob"], ShouldResemble, model.ParticipantStats{Name: "Bob", Average: 90, Max: 90, Min: 90, Count: 1})
			})
		})
	})

	Convey("Given a fractional average", t, func() {
		set := stats.Aggregate(records("Carol", 1, "Carol", 2))

		Convey("Then the average should be a float division", func() {
			So(set["Carol"].Average, ShouldEqual, 1.5)
		})
	})

	Convey("Given scores at the integer limits", t, func() {
		set := stats.Aggregate(records(
			"Big", math.MaxInt64, "Big", math.MaxInt64,
			"Small", math.MinInt64, "Small", math.MinInt64,
			"Wide", math.MaxInt64, "Wide", math.MinInt64, "Wide", math.MaxInt64,
		))

		Convey("Then the sum should not wrap", func() {
			So(set["Big"].Average, ShouldEqual, float64(math.MaxInt64))
			So(set["Small"].Average, ShouldEqual, float64(math.MinInt64))
			So(set["Big"].Average, ShouldBeGreaterThan, 0)
		})

		Convey("Then min <= average <= max should still hold", func() {
			for _, st := range set {
				So(float64(st.Min), ShouldBeLessThanOrEqualTo, st.Average)
				So(st.Average, ShouldBeLessThanOrEqualTo, float64(st.Max))
			}
		})
	})

	Convey("Given no records", t, func() {
		set := stats.Aggregate(nil)

		Convey("Then the set should be empty", func() {
			So(set, ShouldBeEmpty)
			So(set.Names(), ShouldBeEmpty)
		})
	})

	Convey("Given many random records", t, func() {
		rng := rand.New(rand.NewSource(7))
		names := []string{"Alice", "Bob", "Carol", "Dave", "Eve"}
		in := make([]model.Record, 0, 500)
		for i := 0; i < 500; i++ {
			in = append(in, model.Record{Name: names[rng.Intn(len(names))], Score: rng.Intn(201) - 50})
		}

		Convey("Then min <= average <= max for every participant", func() {
			for _, st := range stats.Aggregate(in) {
				So(float64(st.Min), ShouldBeLessThanOrEqualTo, st.Average)
				So(st.Average, ShouldBeLessThanOrEqualTo, float64(st.Max))
				So(st.Count, ShouldBeGreaterThan, 0)
			}
		})

		Convey("Then permuting the input should not change the result", func() {
			want := stats.Aggregate(in)
			shuffled := append([]model.Record(nil), in...)
			rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
			So(stats.Aggregate(shuffled), ShouldResemble, want)
		})
	})
}

func TestSetOrdering(t *testing.T) {
	Convey("Given a set built from unsorted input", t, func() {
		set := stats.Aggregate(records("dave", 1, "Bob", 2, "alice", 3, "Alice", 4))

		Convey("Then names should come back in ascending byte order", func() {
			So(set.Names(), ShouldResemble, []string{"Alice", "Bob", "alice", "dave"})
		})

		Convey("Then sorted stats should follow the same order", func() {
			sorted := set.Sorted()
			So(len(sorted), ShouldEqual, 4)
			So(sorted[0].Name, ShouldEqual, "Alice")
			So(sorted[3].Name, ShouldEqual, "dave")
		})
	})
}

func TestFindExtremes(t *testing.T) {
	Convey("Given an empty set", t, func() {
		_, err := stats.FindExtremes(stats.Set{})

		Convey("Then it should fail with ErrEmptyData", func() {
			So(errors.Is(err, stats.ErrEmptyData), ShouldBeTrue)
		})
	})

	Convey("Given participants with distinct averages", t, func() {
		set := stats.Aggregate(records("Alice", 70, "Bob", 95, "Carol", 50, "Carol", 60))

		Convey("When finding extremes", func() {
			ext, err := stats.FindExtremes(set)

			Convey("Then max and min averages should be found", func() {
				So(err, ShouldBeNil)
				So(ext.MaxAverage, ShouldEqual, 95.0)
				So(ext.MinAverage, ShouldEqual, 55.0)
				So(ext.Tied(), ShouldBeFalse)
			})
		})
	})

	Convey("Given a single participant", t, func() {
		ext, err := stats.FindExtremes(stats.Aggregate(records("Solo", 42)))

		Convey("Then max and min should coincide", func() {
			So(err, ShouldBeNil)
			So(ext.MaxAverage, ShouldEqual, 42.0)
			So(ext.MinAverage, ShouldEqual, 42.0)
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given distinct extremes", t, func() {
		set := stats.Aggregate(records("Alice", 70, "Bob", 95, "Carol", 50))
		ext, err := stats.FindExtremes(set)
		So(err, ShouldBeNil)

		Convey("Then exactly one row is high and one is low", func() {
			So(stats.Classify(set["Bob"], ext), ShouldEqual, types.EmphasisHigh)
			So(stats.Classify(set["Carol"], ext), ShouldEqual, types.EmphasisLow)
			So(stats.Classify(set["Alice"], ext), ShouldEqual, types.EmphasisNone)
		})
	})

	Convey("Given every participant tied on average", t, func() {
		set := stats.Aggregate(records("Alice", 80, "Bob", 90, "Alice", 100))
		ext, err := stats.FindExtremes(set)
		So(err, ShouldBeNil)

		Convey("Then high should win for every row", func() {
			So(ext.Tied(), ShouldBeTrue)
			So(stats.Classify(set["Alice"], ext), ShouldEqual, types.EmphasisHigh)
			So(stats.Classify(set["Bob"], ext), ShouldEqual, types.EmphasisHigh)
		})
	})
}
