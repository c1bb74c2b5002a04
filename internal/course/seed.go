package course

import (
	"context"
)

const (
	demoCourseTitle       = "PMP Test Preparation"
	demoCourseDescription = "Learn everything you need to know to pass the PMP on your first try."
)

// demoVideos is the fixed fixture seeded into a fresh demo account. Three
// distinct videos, appended in order, so the demo course always reads
// 1, 2, 3.
var demoVideos = []NewVideo{
	{
		YTVideoID:      "slJRAbvvAr8",
		Title:          "PMP Exam Questions And Answers - PMP Certification- PMP Exam Prep (2020) - Video 1",
		Description:    "Lot of people think that solving thousands of PMP exam questions and answers will be the deal breaker in there PMP exam prep program. I am not 100% ...",
		YTChannelID:    "UCij4PbZVBmFbUYieXQmt6lQ",
		YTChannelTitle: "EduHubSpot",
		ThumbnailURL:   "https://i.ytimg.com/vi/slJRAbvvAr8/hqdefault.jpg",
	},
	{
		YTVideoID:      "vzqDTSZOTic",
		Title:          "PMP® Certification Full Course - Learn PMP Fundamentals in 12 Hours | PMP® Training Videos | Edureka",
		Description:    "Edureka PMP® Certification Training: https://www.edureka.co/pmp-certification-exam-training This Edureka PMP® Certification Full Course video will help you ...",
		YTChannelID:    "UCkw4JCwteGrDHIsyIIKo4tQ",
		YTChannelTitle: "edureka!",
		ThumbnailURL:   "https://i.ytimg.com/vi/vzqDTSZOTic/hqdefault.jpg",
	},
	{
		YTVideoID:      "MQ0f7WLYTlI",
		Title:          "PMP Exam Prep 25 What would you do next questions with Aileen",
		Description:    "In this video, 25 what would you do next questions for the PMP Exam, Aileen reviews the strategy to address the many what would you do next questions on the ...",
		YTChannelID:    "UCzl_4rhvVtjJ_rSIC1HRvmw",
		YTChannelTitle: "Aileen Ellis",
		ThumbnailURL:   "https://i.ytimg.com/vi/MQ0f7WLYTlI/hqdefault.jpg",
	},
}

// SeedDemoCourse creates the demo course for the owner and fills it with
// the fixed three-video fixture. The owner is expected to be a freshly
// provisioned account with no courses yet.
func (s *Store) SeedDemoCourse(ctx context.Context, ownerID string) error {
	c, err := s.CreateCourse(ctx, ownerID, demoCourseTitle, demoCourseDescription)
	if err != nil {
		return err
	}
	for _, nv := range demoVideos {
		v, err := s.GetOrCreateVideo(ctx, nv)
		if err != nil {
			return err
		}
		if _, err := s.AddVideo(ctx, c.ID, v.ID); err != nil {
			return err
		}
	}
	return nil
}
