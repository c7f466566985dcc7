package indexer

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Job is the slice of a jobs document the indexer reads. Fields the
// portal stores but the snippets never mention are left out.
type Job struct {
	ID              bson.ObjectID `bson:"_id"`
	Title           string        `bson:"title"`
	Description     string        `bson:"description"`
	Requirements    []string      `bson:"requirements"`
	Location        string        `bson:"location"`
	ExperienceLevel int           `bson:"experienceLevel"`
	Company         bson.ObjectID `bson:"company"`
	CreatedAt       time.Time     `bson:"createdAt"`
}

// metadata builds the chunk metadata stored alongside each snippet.
// Missing company and date fields are stored as null, matching documents
// written before those fields existed.
func (j Job) metadata() bson.M {
	var companyID any
	if !j.Company.IsZero() {
		companyID = j.Company
	}
	var postedDate any
	if !j.CreatedAt.IsZero() {
		postedDate = j.CreatedAt
	}
	return bson.M{
		"jobId":           j.ID,
		"companyId":       companyID,
		"experienceLevel": j.ExperienceLevel,
		"location":        j.Location,
		"postedDate":      postedDate,
	}
}
