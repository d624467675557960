package service

import (
	"context"
	"math"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/internal/store"
	"github.com/noah-isme/training-capacity-api/pkg/config"
	"github.com/noah-isme/training-capacity-api/pkg/tracing"
)

const weeksPerMonth = 4

// PlanningServiceConfig tunes the temporal projections.
type PlanningServiceConfig struct {
	WeekBucketing string
	Months        int
}

// PlanningService projects schedules onto week and month buckets.
type PlanningService struct {
	store  *store.Store
	logger *zap.Logger
	cfg    PlanningServiceConfig
	now    func() time.Time
}

// NewPlanningService constructs a PlanningService.
func NewPlanningService(st *store.Store, logger *zap.Logger, cfg PlanningServiceConfig) *PlanningService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.WeekBucketing != config.WeekBucketGroupRelative {
		cfg.WeekBucketing = config.WeekBucketCalendar
	}
	if cfg.Months <= 0 {
		cfg.Months = 12
	}
	return &PlanningService{store: st, logger: logger, cfg: cfg, now: time.Now}
}

// WeeklyPlanning returns week buckets sorted by week number.
func (s *PlanningService) WeeklyPlanning(ctx context.Context) ([]models.WeekPlan, error) {
	ctx, span := tracing.Start(ctx, "planning.weekly", attribute.String("planning.bucketing", s.cfg.WeekBucketing))
	defer span.End()

	var out []models.WeekPlan
	err := s.store.View(ctx, func(tx *store.ReadTx) error {
		out = s.weekly(tx)
		return nil
	})
	return out, err
}

// MonthlyPlanning returns consecutive month buckets starting at the current month.
func (s *PlanningService) MonthlyPlanning(ctx context.Context) ([]models.MonthPlan, error) {
	ctx, span := tracing.Start(ctx, "planning.monthly", attribute.Int("planning.months", s.cfg.Months))
	defer span.End()

	var out []models.MonthPlan
	err := s.store.View(ctx, func(tx *store.ReadTx) error {
		out = s.monthly(tx)
		return nil
	})
	return out, err
}

type plannedSchedule struct {
	schedule models.GroupModuleSchedule
	module   models.Module
	group    models.TrainingGroup
	trainer  models.Trainer
}

// datedSchedules joins live, dated schedules with their module, group and trainer.
func datedSchedules(tx *store.ReadTx) []plannedSchedule {
	var out []plannedSchedule
	for _, sc := range tx.LiveSchedules() {
		if !sc.Dated() {
			continue
		}
		module, ok := tx.Module(sc.ModuleID)
		if !ok {
			continue
		}
		group, _ := tx.Group(sc.GroupID)
		trainer, _ := tx.Trainer(sc.TrainerID)
		out = append(out, plannedSchedule{schedule: sc, module: module, group: group, trainer: trainer})
	}
	return out
}

type weekBucket struct {
	plan     models.WeekPlan
	groups   map[string]int
	trainers map[string]int
	rooms    map[string]int
}

func newWeekBucket(week int) *weekBucket {
	return &weekBucket{
		plan: models.WeekPlan{
			Week:         week,
			Groups:       []models.WeekGroupPlan{},
			TrainerHours: []models.ResourceLoad{},
			RoomHours:    []models.ResourceLoad{},
		},
		groups:   make(map[string]int),
		trainers: make(map[string]int),
		rooms:    make(map[string]int),
	}
}

func (b *weekBucket) addModule(group models.TrainingGroup, entry models.WeekModuleEntry) {
	idx, ok := b.groups[group.ID]
	if !ok {
		idx = len(b.plan.Groups)
		b.groups[group.ID] = idx
		b.plan.Groups = append(b.plan.Groups, models.WeekGroupPlan{GroupID: group.ID, GroupName: group.Name})
	}
	b.plan.Groups[idx].Modules = append(b.plan.Groups[idx].Modules, entry)
}

func addLoad(lines *[]models.ResourceLoad, index map[string]int, id, name string, hours, capacity float64) {
	idx, ok := index[id]
	if !ok {
		idx = len(*lines)
		index[id] = idx
		*lines = append(*lines, models.ResourceLoad{ID: id, Name: name, Capacity: capacity})
	}
	(*lines)[idx].Hours += hours
}

func (s *PlanningService) weekly(tx *store.ReadTx) []models.WeekPlan {
	items := datedSchedules(tx)
	if len(items) == 0 {
		return []models.WeekPlan{}
	}

	calendar := s.cfg.WeekBucketing == config.WeekBucketCalendar
	var origin time.Time
	if calendar {
		origin = mondayOf(*items[0].schedule.StartDate)
		for _, item := range items[1:] {
			if m := mondayOf(*item.schedule.StartDate); m.Before(origin) {
				origin = m
			}
		}
	}

	rooms := make(map[string]models.Room)
	for _, r := range tx.Rooms() {
		rooms[r.ID] = r
	}

	buckets := make(map[int]*weekBucket)
	for _, item := range items {
		load := item.module.WeeklyLoad()
		weeks := item.module.DurationWeeks()
		start := truncateDay(*item.schedule.StartDate)
		for index := 0; index < weeks; index++ {
			weekStart := addWeeks(start, index)

			var key int
			var bucketStart time.Time
			if calendar {
				bucketStart = mondayOf(weekStart)
				key = daysBetween(origin, bucketStart)/7 + 1
			} else {
				key = floorDiv(daysBetween(truncateDay(item.group.StartDate), weekStart), 7) + 1
			}

			bucket, ok := buckets[key]
			if !ok {
				bucket = newWeekBucket(key)
				if calendar {
					ws := bucketStart
					we := bucketStart.AddDate(0, 0, 6)
					bucket.plan.WeekStart, bucket.plan.WeekEnd = &ws, &we
				}
				buckets[key] = bucket
			}

			bucket.addModule(item.group, models.WeekModuleEntry{
				ScheduleID:  item.schedule.ID,
				ModuleID:    item.module.ID,
				ModuleName:  item.module.Name,
				TrainerID:   item.schedule.TrainerID,
				TrainerName: item.trainer.Name,
				WeeklyHours: load,
				TotalHours:  item.module.TotalHours,
				Type:        item.module.Type,
				Progress:    item.schedule.Progress,
				Order:       item.schedule.ScheduledOrder,
			})
			addLoad(&bucket.plan.TrainerHours, bucket.trainers, item.schedule.TrainerID, item.trainer.Name, load, float64(item.trainer.MaxHoursPerWeek))
			if item.group.HasRoom() {
				room := rooms[*item.group.RoomID]
				addLoad(&bucket.plan.RoomHours, bucket.rooms, *item.group.RoomID, room.Name, load, models.RoomHoursPerWeek)
			}
		}
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]models.WeekPlan, 0, len(keys))
	for _, k := range keys {
		plan := buckets[k].plan
		flagOverload(plan.TrainerHours)
		flagOverload(plan.RoomHours)
		out = append(out, plan)
	}
	return out
}

func flagOverload(lines []models.ResourceLoad) {
	for i := range lines {
		lines[i].IsOverloaded = lines[i].Hours > lines[i].Capacity
	}
}

func (s *PlanningService) monthly(tx *store.ReadTx) []models.MonthPlan {
	now := s.now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var trainerCapacity float64
	for _, t := range tx.ActiveTrainers() {
		trainerCapacity += float64(t.MaxHoursPerWeek * weeksPerMonth)
	}
	roomCapacity := float64(len(tx.ActiveRooms()) * models.RoomHoursPerWeek * weeksPerMonth)

	out := make([]models.MonthPlan, s.cfg.Months)
	for i := range out {
		month := first.AddDate(0, i, 0)
		out[i] = models.MonthPlan{
			Month:           month.Format("2006-01"),
			Year:            month.Year(),
			MonthNumber:     int(month.Month()),
			TrainerCapacity: trainerCapacity,
			RoomCapacity:    roomCapacity,
			Conflicts:       []models.PlanningConflict{},
		}
	}

	for _, item := range datedSchedules(tx) {
		load := item.module.WeeklyLoad() * weeksPerMonth
		start := *item.schedule.StartDate
		end := *item.schedule.EndDate
		cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		for !cursor.After(end) {
			if idx := monthsBetween(first, cursor); idx >= 0 && idx < len(out) {
				out[idx].TotalGroups++
				out[idx].TotalTrainerHours += load
				out[idx].TotalRoomHours += load
			}
			cursor = cursor.AddDate(0, 1, 0)
		}
	}

	for i := range out {
		if out[i].TotalTrainerHours > trainerCapacity {
			out[i].Conflicts = append(out[i].Conflicts, models.PlanningConflict{
				Type:        models.ConflictTrainer,
				Description: trainerConflictMessage(out[i].TotalTrainerHours, trainerCapacity),
			})
		}
		if out[i].TotalRoomHours > roomCapacity {
			out[i].Conflicts = append(out[i].Conflicts, models.PlanningConflict{
				Type:        models.ConflictRoom,
				Description: roomConflictMessage(out[i].TotalRoomHours, roomCapacity),
			})
		}
	}
	return out
}

func mondayOf(t time.Time) time.Time {
	day := truncateDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
