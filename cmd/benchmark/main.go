package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/limaJavier/courseplan/pkg/model"
	"github.com/limaJavier/courseplan/pkg/scheduler"
	"github.com/samber/lo"
)

const (
	degreeName         = "Computer Science"
	levels             = 4
	MB         float32 = 1024 * 1024
)

type ResultType int

const (
	solved ResultType = iota
	infeasible
	unverified
)

var resultTypes = map[ResultType]string{
	solved:     "solved",
	infeasible: "infeasible",
	unverified: "unverified",
}

type TestMetadata struct {
	Name          string
	Seed          int64
	Courses       int
	Requirements  int
	RequiredCount int
}

type BenchmarkResult struct {
	Test         TestMetadata
	SlotsPerTerm int
	Duration     int64
	Memory       float32
	Terms        int
	Placed       int
	Missed       int
	Result       ResultType
}

func main() {
	seedPtr := flag.Int64("seed", 42, "Seed of the generated course bundles")
	outFilePathPtr := flag.String("out", "benchmark_results.csv", "Path to the CSV file where the results will be written")
	flag.Parse()

	tests := getTests(*seedPtr)
	slotSizes := getSlotSizes()
	results := make([]BenchmarkResult, 0, len(tests)*len(slotSizes))

	for _, test := range tests {
		data := generateBundle(rand.New(rand.NewSource(test.Seed)), test.Courses)
		for _, slotsPerTerm := range slotSizes {
			fmt.Printf("Benchmarking test \"%v\" with %v slots per term\n", test.Name, slotsPerTerm)
			results = append(results, measure(test, data, slotsPerTerm))
		}
	}

	file, err := os.Create(*outFilePathPtr)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()
	toCsv(file, results)
}

func getTests(seed int64) []TestMetadata {
	return lo.Map([]int{40, 80, 160, 320}, func(courses int, i int) TestMetadata {
		return TestMetadata{
			Name:          fmt.Sprintf("generated-%v", courses),
			Seed:          seed + int64(i),
			Courses:       courses,
			RequiredCount: courses / 2,
		}
	})
}

func getSlotSizes() []int {
	return []int{3, 5, 7}
}

// generateBundle builds a bundle of courses spread over levels. A course may require courses of lower
// levels, and the degree requires a sample of the two upper levels.
func generateBundle(random *rand.Rand, courses int) model.CourseData {
	perLevel := max(courses/levels, 1)
	names := make([][]string, levels)
	data := model.CourseData{
		Degrees: make([]model.RawCourse, 0, 1),
		Courses: make([]model.RawCourse, 0, courses),
	}

	for level := range levels {
		for i := range perLevel {
			name := fmt.Sprintf("COIS-%d%03dH", level+1, i*10)
			names[level] = append(names[level], name)

			raw := model.RawCourse{
				Name:           name,
				PreRequisites:  make([]string, 0),
				CoRequisites:   make([]string, 0),
				TimeTableInfos: generateOfferings(random),
			}
			if level > 0 {
				// The same code one level down is the natural prerequisite (3020 needs 2020)
				raw.PreRequisites = append(raw.PreRequisites, names[level-1][i])
				if random.Intn(3) == 0 {
					raw.PreRequisites = append(raw.PreRequisites, names[random.Intn(level)][random.Intn(perLevel)])
				}
				if random.Intn(6) == 0 {
					raw.CoRequisites = append(raw.CoRequisites, names[level-1][random.Intn(perLevel)])
				}
			}
			data.Courses = append(data.Courses, raw)
		}
	}

	upper := slices.Concat(names[levels-2], names[levels-1])
	data.Degrees = append(data.Degrees, model.RawCourse{
		Name:          degreeName,
		IsDegree:      true,
		PreRequisites: sample(random, upper, max(len(upper)/4, 1)),
	})
	return data
}

func generateOfferings(random *rand.Rand) []model.RawTimetableOffering {
	days := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	terms := []model.Term{model.Fall, model.Winter}
	if random.Intn(3) == 0 {
		terms = terms[random.Intn(2):][:1]
	}

	offerings := make([]model.RawTimetableOffering, 0)
	for _, term := range terms {
		for range random.Intn(2) + 1 {
			start := model.EarliestTime.Hour() + random.Intn(12)
			length := random.Intn(2) + 1
			slots := lo.Map(sample(random, days, random.Intn(2)+1), func(day time.Weekday, _ int) model.RawTimeSlot {
				return model.RawTimeSlot{
					Day:   day.String(),
					Start: model.NewTimeOfDay(start, 0).String(),
					End:   model.NewTimeOfDay(start+length, 0).String(),
				}
			})
			offerings = append(offerings, model.RawTimetableOffering{OfferedTerm: term.String(), TimeSlots: slots})
		}
	}
	return offerings
}

// sample picks count distinct items in random order
func sample[T any](random *rand.Rand, items []T, count int) []T {
	return lo.Map(random.Perm(len(items))[:count], func(i int, _ int) T { return items[i] })
}

func measure(test TestMetadata, data model.CourseData, slotsPerTerm int) BenchmarkResult {
	graph, err := model.FromCourseData(data)
	if err != nil {
		log.Fatalf("generated bundle \"%v\" is invalid: %v", test.Name, err)
	}
	degree, _ := graph.Course(degreeName)
	test.Requirements = graph.EdgeCount()

	planner := scheduler.NewGreedyScheduler()

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	start := time.Now()

	schedule, err := planner.Schedule(graph, slotsPerTerm, test.RequiredCount, degree)

	duration := time.Since(start)
	runtime.ReadMemStats(&after)

	result := BenchmarkResult{
		Test:         test,
		SlotsPerTerm: slotsPerTerm,
		Duration:     duration.Microseconds(),
		Memory:       float32(after.TotalAlloc-before.TotalAlloc) / MB,
	}

	if errors.Is(err, scheduler.ErrInfeasible) {
		result.Result = infeasible
		return result
	} else if err != nil {
		log.Fatalf("an error occurred while scheduling test \"%v\" with %v slots per term: %v", test.Name, slotsPerTerm, err)
	}

	result.Terms = schedule.TermCount()
	result.Placed = schedule.Count()
	result.Missed = len(schedule.MissedOpportunities())
	if planner.Verify(schedule, graph) {
		result.Result = solved
	} else {
		result.Result = unverified
	}
	return result
}

func toCsv(output io.Writer, results []BenchmarkResult) {
	writer := csv.NewWriter(output)
	defer writer.Flush()

	header := []string{"Test", "Seed", "Courses", "Requirements", "Required", "SlotsPerTerm", "Duration(us)", "Memory(MB)", "Terms", "Placed", "Missed", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Seed),
			fmt.Sprintf("%d", result.Test.Courses),
			fmt.Sprintf("%d", result.Test.Requirements),
			fmt.Sprintf("%d", result.Test.RequiredCount),
			fmt.Sprintf("%d", result.SlotsPerTerm),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.Terms),
			fmt.Sprintf("%d", result.Placed),
			fmt.Sprintf("%d", result.Missed),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
