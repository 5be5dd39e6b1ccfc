//-------------------------------------------------------------------------
//
// LCV Retail Analytics Platform
//
// Copyright (c) 2025 - 2026, LCV Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen provides data generation utilities for retail-datagen.
package datagen

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker provides seeded fake data generation using gofakeit. A single
// Faker is threaded through every pipeline stage so the whole run is a
// pure function of the seed.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFaker creates a new Faker with the given seed.
func NewFaker(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
	}
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Float64 generates a random float64 between min and max.
func (f *Faker) Float64(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// Chance returns true with the given probability in [0, 1].
func (f *Faker) Chance(p float64) bool {
	return f.faker.Float64Range(0, 1) < p
}

// Name generates a random full name.
func (f *Faker) Name() string {
	return f.faker.Name()
}

// DateRange generates a random date within a range.
func (f *Faker) DateRange(start, end time.Time) time.Time {
	return f.faker.DateRange(start, end)
}

// DaysAgo generates a date a uniform random number of days in the past,
// between min and max days (inclusive), truncated to midnight UTC.
func (f *Faker) DaysAgo(min, max int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, -f.Int(min, max))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}

// ChooseWeighted returns a random element based on weights.
func ChooseWeighted[T any](f *Faker, items []T, weights []int) T {
	if len(items) == 0 || len(weights) == 0 {
		var zero T
		return zero
	}

	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}

	r := f.Int(1, totalWeight)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return items[i]
		}
	}

	return items[len(items)-1]
}
