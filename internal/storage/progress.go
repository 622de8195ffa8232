package storage

import (
	"context"
	"fmt"
	"time"
)

// PeriodVolume is the training done in one week or month.
type PeriodVolume struct {
	Period   string  `json:"period"`
	Workouts int     `json:"workouts"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	Volume   float64 `json:"volume"`
}

// VolumeByPeriod totals a user's sets, reps and volume (reps × weight) per
// bucket between start and end, newest period first.
func (db *DB) VolumeByPeriod(ctx context.Context, userID int, start, end time.Time, bucket string) ([]PeriodVolume, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, w.created_at)::date AS period,
		        COUNT(DISTINCT w.id)::int,
		        COUNT(s.id)::int,
		        COALESCE(SUM(s.reps), 0)::int,
		        COALESCE(SUM(s.reps * s.weight), 0)::float8
		 FROM workouts w
		 LEFT JOIN exercises e ON e.workout_id = w.id
		 LEFT JOIN sets s ON s.exercise_id = e.id
		 WHERE w.user_id = $2 AND w.created_at >= $3 AND w.created_at < $4
		 GROUP BY period
		 ORDER BY period DESC`,
		truncInterval(bucket), userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying volume: %w", err)
	}
	defer rows.Close()

	result := []PeriodVolume{}
	for rows.Next() {
		var period time.Time
		var v PeriodVolume
		if err := rows.Scan(&period, &v.Workouts, &v.Sets, &v.Reps, &v.Volume); err != nil {
			return nil, fmt.Errorf("scanning volume: %w", err)
		}
		v.Period = period.Format("2006-01-02")
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating volume: %w", err)
	}
	return result, nil
}

// truncInterval maps a bucket name to the date_trunc field. Anything but
// "week" buckets by month.
func truncInterval(bucket string) string {
	if bucket == "week" {
		return "week"
	}
	return "month"
}
