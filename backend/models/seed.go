package models

import "time"

// SeedCourses returns the built-in catalog written on first run. Each call
// returns a fresh copy.
func SeedCourses() []Course {
	return []Course{
		{
			ID:             "course-1",
			Title:          "Introduction to Programming",
			Description:    "Learn the fundamentals of programming: variables, control flow and functions.",
			Thumbnail:      "https://images.unsplash.com/photo-1515879218367-8466d910aaa4",
			InstructorID:   "instructor-1",
			InstructorName: "Dr. Sarah Chen",
			Category:       "Programming",
			Difficulty:     Beginner,
			IsPublished:    true,
			TotalLessons:   6,
			CreatedAt:      time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			Modules: []Module{
				{
					ID:    "module-1",
					Title: "Getting Started",
					Lessons: []Lesson{
						{ID: "lesson-1", Title: "What is Programming?", Content: "# What is Programming?\n\nProgramming is the process of giving a computer a precise list of instructions.", Duration: "10 min"},
						{ID: "lesson-2", Title: "Setting Up Your Environment", Content: "# Setting Up\n\nInstall an editor and a runtime, then run your first program.", Duration: "15 min"},
					},
				},
				{
					ID:    "module-2",
					Title: "Core Concepts",
					Lessons: []Lesson{
						{ID: "lesson-3", Title: "Variables and Types", Content: "# Variables\n\nA variable is a named place to keep a value.", Duration: "20 min"},
						{ID: "lesson-4", Title: "Control Flow", Content: "# Control Flow\n\nUse `if`, `else` and loops to decide what runs next.", Duration: "25 min"},
					},
				},
				{
					ID:    "module-3",
					Title: "Functions",
					Lessons: []Lesson{
						{ID: "lesson-5", Title: "Defining Functions", Content: "# Functions\n\nFunctions group instructions under a name so they can be reused.", Duration: "20 min"},
						{ID: "lesson-6", Title: "Parameters and Return Values", Content: "# Parameters\n\nPass values in, get results back.", Duration: "20 min"},
					},
				},
			},
		},
		{
			ID:             "course-2",
			Title:          "UI/UX Design Principles",
			Description:    "Design interfaces people enjoy using: layout, color, typography and user research.",
			Thumbnail:      "https://images.unsplash.com/photo-1561070791-2526d30994b5",
			InstructorID:   "instructor-2",
			InstructorName: "Marcus Webb",
			Category:       "Design",
			Difficulty:     Intermediate,
			IsPublished:    true,
			TotalLessons:   4,
			CreatedAt:      time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC),
			Modules: []Module{
				{
					ID:    "module-1",
					Title: "Visual Design",
					Lessons: []Lesson{
						{ID: "lesson-7", Title: "Layout and Grids", Content: "# Layout\n\nGrids bring order and rhythm to a screen.", Duration: "15 min"},
						{ID: "lesson-8", Title: "Color and Typography", Content: "# Color and Type\n\nContrast and hierarchy guide the eye.", Duration: "20 min"},
					},
				},
				{
					ID:    "module-2",
					Title: "User Experience",
					Lessons: []Lesson{
						{ID: "lesson-9", Title: "User Research", Content: "# Research\n\nInterview users before drawing a single screen.", Duration: "25 min"},
						{ID: "lesson-10", Title: "Prototyping", Content: "# Prototyping\n\nTest cheap prototypes early and often.", Duration: "30 min"},
					},
				},
			},
		},
		{
			ID:             "course-3",
			Title:          "Data Science with Python",
			Description:    "Analyze data, build models and communicate results with Python.",
			Thumbnail:      "https://images.unsplash.com/photo-1551288049-bebda4e38f71",
			InstructorID:   "instructor-1",
			InstructorName: "Dr. Sarah Chen",
			Category:       "Data Science",
			Difficulty:     Advanced,
			IsPublished:    true,
			TotalLessons:   5,
			CreatedAt:      time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
			Modules: []Module{
				{
					ID:    "module-1",
					Title: "Working with Data",
					Lessons: []Lesson{
						{ID: "lesson-11", Title: "DataFrames", Content: "# DataFrames\n\nTabular data with labeled rows and columns.", Duration: "25 min"},
						{ID: "lesson-12", Title: "Cleaning Data", Content: "# Cleaning\n\nHandle missing values and outliers.", Duration: "30 min"},
						{ID: "lesson-13", Title: "Visualization", Content: "# Visualization\n\nPlot distributions and relationships.", Duration: "25 min"},
					},
				},
				{
					ID:    "module-2",
					Title: "Machine Learning Basics",
					Lessons: []Lesson{
						{ID: "lesson-14", Title: "Regression", Content: "# Regression\n\nPredict a number from features.", Duration: "35 min"},
						{ID: "lesson-15", Title: "Classification", Content: "# Classification\n\nPredict a label from features.", Duration: "35 min"},
					},
				},
			},
		},
	}
}
