package scheduler

import (
	"errors"
	"fmt"
	"slices"

	"github.com/limaJavier/courseplan/pkg/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DefaultMaxCombinations bounds the number of section combinations tried for a single term
const DefaultMaxCombinations uint64 = 1 << 20

type Scheduler interface {
	// Schedule places at least requiredCount courses, every requirement of degree included, into terms of
	// slotsPerTerm slots each
	Schedule(
		graph *model.CourseGraph,
		slotsPerTerm int,
		requiredCount int,
		degree *model.Course,
	) (*Schedule, error)

	// Verify checks a schedule against the graph it was built from
	Verify(
		schedule *Schedule,
		graph *model.CourseGraph,
	) bool
}

type Option func(*greedyScheduler)

// WithStartingTerm sets the term type of term 0
func WithStartingTerm(term model.Term) Option {
	return func(scheduler *greedyScheduler) { scheduler.startingTerm = term }
}

func WithLogger(logger *zap.Logger) Option {
	return func(scheduler *greedyScheduler) {
		if logger != nil {
			scheduler.logger = logger
		}
	}
}

// WithMaxCombinations sets the ceiling on section combinations explored per placement attempt
func WithMaxCombinations(ceiling uint64) Option {
	return func(scheduler *greedyScheduler) {
		if ceiling > 0 {
			scheduler.maxCombinations = ceiling
		}
	}
}

type greedyScheduler struct {
	startingTerm    model.Term
	logger          *zap.Logger
	maxCombinations uint64
}

func NewGreedyScheduler(options ...Option) Scheduler {
	scheduler := &greedyScheduler{
		startingTerm:    model.Fall,
		logger:          zap.NewNop(),
		maxCombinations: DefaultMaxCombinations,
	}
	for _, option := range options {
		option(scheduler)
	}
	return scheduler
}

// run holds the state of a single Schedule call
type run struct {
	*greedyScheduler
	graph    *model.CourseGraph
	schedule *Schedule
	costs    map[string]float64
	// Terms at or beyond horizon are never tried
	horizon int
}

func (scheduler *greedyScheduler) Schedule(graph *model.CourseGraph, slotsPerTerm, requiredCount int, degree *model.Course) (*Schedule, error) {
	//** Validate request
	if graph == nil || degree == nil {
		return nil, fmt.Errorf("%w: graph and degree must be given", ErrInvalidArgument)
	} else if slotsPerTerm <= 0 {
		return nil, fmt.Errorf("%w: slots per term must be positive: %v", ErrInvalidArgument, slotsPerTerm)
	} else if requiredCount < 0 {
		return nil, fmt.Errorf("%w: required count cannot be negative: %v", ErrInvalidArgument, requiredCount)
	} else if requiredCount > graph.VertexCount() {
		return nil, fmt.Errorf("%w: %v courses required but only %v exist", ErrInfeasible, requiredCount, graph.VertexCount())
	} else if !graph.HasVertex(degree.Name()) {
		return nil, fmt.Errorf("%w: degree %q", model.ErrVertexNotFound, degree.Name())
	} else if !lo.ContainsBy(graph.Roots(), degree.Equal) {
		return nil, fmt.Errorf("%w: %q", ErrNotRoot, degree.Name())
	}

	//** Compute heuristic
	costs, err := graph.Costs(degree)
	if err != nil {
		return nil, err
	}

	closure, err := graph.TopologicalSequence(degree)
	if err != nil {
		return nil, err
	}
	mandatory := lo.CountBy(closure, func(course *model.Course) bool { return !course.IsDegree() })

	r := &run{
		greedyScheduler: scheduler,
		graph:           graph,
		schedule:        newSchedule(slotsPerTerm, scheduler.startingTerm),
		costs:           costs,
		horizon:         model.TermTypes * max(requiredCount, mandatory),
	}

	//** Required phase
	stack := lo.Map(graph.Requirements(degree.Name()), func(requirement model.Requirement, _ int) *model.Course {
		return requirement.Course
	})
	r.sortByCost(stack)
	for len(stack) > 0 {
		course := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := r.placeSequence(course); err != nil {
			return nil, fmt.Errorf("required course %q: %w", course.Name(), err)
		}
	}

	//** Filler phase
	candidates := lo.Filter(graph.Courses(), func(course *model.Course, _ int) bool {
		_, placed := r.schedule.CourseTerm(course.Name())
		return !course.IsDegree() && !placed
	})
	r.sortByCost(candidates)
	for _, course := range candidates {
		if r.schedule.Count() >= requiredCount {
			break
		} else if _, placed := r.schedule.CourseTerm(course.Name()); placed {
			continue
		}

		if err := r.placeSequence(course); err != nil {
			if errors.Is(err, ErrSearchSpaceTooLarge) || errors.Is(err, model.ErrInconsistentGraph) {
				return nil, err
			}
			r.schedule.missed = append(r.schedule.missed, fmt.Sprintf("%v: %v", course.Name(), err))
			scheduler.logger.Warn("missed opportunity",
				zap.String("course", course.Name()),
				zap.Error(err),
			)
		}
	}

	if r.schedule.Count() < requiredCount {
		return nil, fmt.Errorf("%w: placed %v of %v required courses", ErrInfeasible, r.schedule.Count(), requiredCount)
	}

	scheduler.logger.Info("schedule built",
		zap.String("degree", degree.Name()),
		zap.Int("placed", r.schedule.Count()),
		zap.Int("terms", r.schedule.TermCount()),
		zap.Int("missed", len(r.schedule.missed)),
	)
	return r.schedule, nil
}

// sortByCost orders courses by ascending cost, keeping graph order among equal costs
func (r *run) sortByCost(courses []*model.Course) {
	slices.SortStableFunc(courses, func(a, b *model.Course) int {
		if r.costs[a.Name()] < r.costs[b.Name()] {
			return -1
		} else if r.costs[a.Name()] > r.costs[b.Name()] {
			return 1
		}
		return 0
	})
}

// placeSequence places course after every course it transitively depends on
func (r *run) placeSequence(course *model.Course) error {
	sequence, err := r.graph.TopologicalSequence(course)
	if err != nil {
		return err
	}

	for _, dependency := range sequence {
		if _, placed := r.schedule.CourseTerm(dependency.Name()); placed || dependency.IsDegree() {
			continue
		}
		if err := r.place(dependency); err != nil {
			return err
		}
	}
	return nil
}

// place puts course in the first term that respects its requirements, has a free slot, runs the course
// and admits a conflict-free set of offerings
func (r *run) place(course *model.Course) error {
	earliest := 0
	for _, requirement := range r.graph.Requirements(course.Name()) {
		if requirement.Course.IsDegree() {
			continue
		}

		index, placed := r.schedule.CourseTerm(requirement.Course.Name())
		if !placed {
			return fmt.Errorf("%w: %q requires %q which is not placed", ErrInfeasible, course.Name(), requirement.Course.Name())
		}

		switch requirement.Relation {
		case model.Prereq:
			earliest = max(earliest, index+1)
		case model.Coreq:
			earliest = max(earliest, index)
		}
	}

	for index := earliest; index < r.horizon; index++ {
		slots, entries, ok, err := r.schedule.trial(course, index, r.maxCombinations)
		if err != nil {
			return fmt.Errorf("course %q in term %v: %w", course.Name(), index, err)
		} else if !ok {
			continue
		}

		r.schedule.commit(course, index, slots, entries)
		r.logger.Debug("course placed",
			zap.String("course", course.Name()),
			zap.Int("term", index),
			zap.Stringer("type", r.schedule.TermType(index)),
			zap.Int("slot", r.schedule.slotOf(course.Name(), index)),
		)
		return nil
	}

	return fmt.Errorf("%w: no term between %v and %v can take %q", ErrInfeasible, earliest, r.horizon-1, course.Name())
}
