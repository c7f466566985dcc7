package seed

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Fixed IDs make the seeder idempotent: rerunning updates the same
// documents instead of inserting duplicates.
var (
	userRahim   = mustOID("65a0c8e4b1d2f30001a10001") // recruiter, TechVision
	userFarzana = mustOID("65a0c8e4b1d2f30001a10002") // recruiter, PortCity
	userTanvir  = mustOID("65a0c8e4b1d2f30001a10003") // student
	userNusrat  = mustOID("65a0c8e4b1d2f30001a10004") // student

	companyTechVision = mustOID("65a0c8e4b1d2f30001b20001")
	companyPortCity   = mustOID("65a0c8e4b1d2f30001b20002")
	companyCloudNest  = mustOID("65a0c8e4b1d2f30001b20003")

	jobBackend  = mustOID("65a0c8e4b1d2f30001c30001")
	jobFrontend = mustOID("65a0c8e4b1d2f30001c30002")
	jobJunior   = mustOID("65a0c8e4b1d2f30001c30003")
	jobData     = mustOID("65a0c8e4b1d2f30001c30004")
	jobDevOps   = mustOID("65a0c8e4b1d2f30001c30005")
	jobMobile   = mustOID("65a0c8e4b1d2f30001c30006")
	jobManager  = mustOID("65a0c8e4b1d2f30001c30007")
	jobIntern   = mustOID("65a0c8e4b1d2f30001c30008")

	appTanvirBackend  = mustOID("65a0c8e4b1d2f30001d40001")
	appTanvirFrontend = mustOID("65a0c8e4b1d2f30001d40002")
	appNusratJunior   = mustOID("65a0c8e4b1d2f30001d40003")
)

var seededAt = time.Date(2025, time.May, 9, 17, 49, 21, 0, time.UTC)

func mustOID(hex string) bson.ObjectID {
	oid, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		panic(err)
	}
	return oid
}

// document is one seeded record: its fixed id and the fields to set.
type document struct {
	id  bson.ObjectID
	set bson.M
}

// collectionData groups documents destined for one collection.
type collectionData struct {
	name string
	docs []document
}

func demoData() []collectionData {
	return []collectionData{
		{name: "users", docs: users()},
		{name: "companies", docs: companies()},
		{name: "jobs", docs: jobs()},
		{name: "applications", docs: applications()},
	}
}

func users() []document {
	return []document{
		{id: userRahim, set: bson.M{
			"fullname":    "Rahim Ahmed",
			"email":       "rahim.ahmed@techvision.example",
			"phoneNumber": "+8801711000001",
			"password":    "$2b$10$seededdemoaccountnologin0000000000000000000000000000",
			"role":        "recruiter",
			"profile": bson.M{
				"bio":    "Talent lead at TechVision Bangladesh.",
				"skills": []string{},
			},
			"createdAt": seededAt,
			"updatedAt": seededAt,
		}},
		{id: userFarzana, set: bson.M{
			"fullname":    "Farzana Akter",
			"email":       "farzana.akter@portcity.example",
			"phoneNumber": "+8801711000002",
			"password":    "$2b$10$seededdemoaccountnologin0000000000000000000000000000",
			"role":        "recruiter",
			"profile": bson.M{
				"bio":    "Hiring for PortCity Solutions and CloudNest Labs.",
				"skills": []string{},
			},
			"createdAt": seededAt,
			"updatedAt": seededAt,
		}},
		{id: userTanvir, set: bson.M{
			"fullname":    "Tanvir Hossain",
			"email":       "tanvir.hossain@student.example",
			"phoneNumber": "+8801711000003",
			"password":    "$2b$10$seededdemoaccountnologin0000000000000000000000000000",
			"role":        "student",
			"profile": bson.M{
				"bio":    "Final-year CSE student looking for backend roles.",
				"skills": []string{"JavaScript", "Node.js", "MongoDB"},
			},
			"createdAt": seededAt,
			"updatedAt": seededAt,
		}},
		{id: userNusrat, set: bson.M{
			"fullname":    "Nusrat Jahan",
			"email":       "nusrat.jahan@student.example",
			"phoneNumber": "+8801711000004",
			"password":    "$2b$10$seededdemoaccountnologin0000000000000000000000000000",
			"role":        "student",
			"profile": bson.M{
				"bio":    "Frontend developer, two internships completed.",
				"skills": []string{"React", "CSS", "TypeScript"},
			},
			"createdAt": seededAt,
			"updatedAt": seededAt,
		}},
	}
}

func companies() []document {
	return []document{
		{id: companyTechVision, set: bson.M{
			"name":        "TechVision Bangladesh",
			"description": "Product studio building SaaS tools for local enterprises.",
			"website":     "https://techvision.example",
			"location":    "Dhaka",
			"userId":      userRahim,
			"createdAt":   seededAt,
			"updatedAt":   seededAt,
		}},
		{id: companyPortCity, set: bson.M{
			"name":        "PortCity Solutions",
			"description": "Logistics and port automation software.",
			"website":     "https://portcity.example",
			"location":    "Chittagong",
			"userId":      userFarzana,
			"createdAt":   seededAt,
			"updatedAt":   seededAt,
		}},
		{id: companyCloudNest, set: bson.M{
			"name":        "CloudNest Labs",
			"description": "Cloud consulting and managed infrastructure.",
			"website":     "https://cloudnest.example",
			"location":    "Dhaka",
			"userId":      userFarzana,
			"createdAt":   seededAt,
			"updatedAt":   seededAt,
		}},
	}
}

func jobs() []document {
	return []document{
		{id: jobBackend, set: bson.M{
			"title": "Senior Backend Engineer",
			"description": "Design and run the services behind our recruitment " +
				"marketplace. You will own the job search and application APIs, " +
				"work closely with the data team on search relevance, and mentor " +
				"two mid-level engineers.",
			"requirements": []string{
				"Node.js", "Express", "MongoDB", "Redis", "5+ years experience",
			},
			"salary":          180000,
			"location":        "Dhaka",
			"jobType":         "Full-time",
			"experienceLevel": 4,
			"position":        2,
			"company":         companyTechVision,
			"created_by":      userRahim,
			"applications":    []bson.ObjectID{appTanvirBackend},
			"createdAt":       seededAt,
			"updatedAt":       seededAt,
		}},
		{id: jobFrontend, set: bson.M{
			"title": "Frontend Developer",
			"description": "Build the employer dashboard and candidate portal in " +
				"React. Tight collaboration with design, weekly releases, strong " +
				"focus on accessibility.",
			"requirements": []string{"React", "TypeScript", "CSS", "REST APIs"},
			"salary":          90000,
			"location":        "Dhaka",
			"jobType":         "Full-time",
			"experienceLevel": 2,
			"position":        3,
			"company":         companyTechVision,
			"created_by":      userRahim,
			"applications":    []bson.ObjectID{appTanvirFrontend},
			"createdAt":       seededAt.AddDate(0, 0, 3),
			"updatedAt":       seededAt.AddDate(0, 0, 3),
		}},
		{id: jobJunior, set: bson.M{
			"title": "Junior Software Engineer",
			"description": "Entry-level role on the platform team. You will fix " +
				"bugs across the stack, write tests, and graduate to feature work " +
				"within your first quarter. Fresh graduates are welcome.",
			"requirements": []string{"JavaScript", "Git", "CS fundamentals"},
			"salary":          45000,
			"location":        "Dhaka",
			"jobType":         "Full-time",
			"experienceLevel": 1,
			"position":        4,
			"company":         companyCloudNest,
			"created_by":      userFarzana,
			"applications":    []bson.ObjectID{appNusratJunior},
			"createdAt":       seededAt.AddDate(0, 0, 5),
			"updatedAt":       seededAt.AddDate(0, 0, 5),
		}},
		{id: jobData, set: bson.M{
			"title": "Data Engineer",
			"description": "Own the pipelines that feed hiring analytics: event " +
				"ingestion, nightly aggregation jobs, and the metrics API used by " +
				"employer dashboards.",
			"requirements": []string{"Python", "SQL", "Airflow", "MongoDB"},
			"salary":          130000,
			"location":        "Dhaka",
			"jobType":         "Full-time",
			"experienceLevel": 3,
			"position":        1,
			"company":         companyCloudNest,
			"created_by":      userFarzana,
			"applications":    []bson.ObjectID{},
			"createdAt":       seededAt.AddDate(0, 0, 7),
			"updatedAt":       seededAt.AddDate(0, 0, 7),
		}},
		{id: jobDevOps, set: bson.M{
			"title": "DevOps Engineer",
			"description": "Keep the port automation platform running: Kubernetes " +
				"clusters, CI pipelines, observability, and on-call rotation with " +
				"the backend team.",
			"requirements": []string{"Kubernetes", "Terraform", "Linux", "CI/CD"},
			"salary":          140000,
			"location":        "Chittagong",
			"jobType":         "Full-time",
			"experienceLevel": 3,
			"position":        1,
			"company":         companyPortCity,
			"created_by":      userFarzana,
			"applications":    []bson.ObjectID{},
			"createdAt":       seededAt.AddDate(0, 0, 10),
			"updatedAt":       seededAt.AddDate(0, 0, 10),
		}},
		{id: jobMobile, set: bson.M{
			"title": "Mobile App Developer",
			"description": "Ship the candidate mobile app for Android and iOS " +
				"from a single React Native codebase. Remote-friendly within " +
				"Bangladesh with quarterly meetups in Sylhet.",
			"requirements": []string{"React Native", "REST APIs", "App Store releases"},
			"salary":          100000,
			"location":        "Sylhet",
			"jobType":         "Contract",
			"experienceLevel": 2,
			"position":        1,
			"company":         companyPortCity,
			"created_by":      userFarzana,
			"applications":    []bson.ObjectID{},
			"createdAt":       seededAt.AddDate(0, 0, 12),
			"updatedAt":       seededAt.AddDate(0, 0, 12),
		}},
		{id: jobManager, set: bson.M{
			"title": "Engineering Manager",
			"description": "We are looking for an Engineering Manager to lead the " +
				"platform group behind our recruitment marketplace. You will own " +
				"delivery for the teams that build job search, applicant tracking, " +
				"and employer analytics. The role pairs hands-on architecture work " +
				"with people leadership, and you will split your time between " +
				"design reviews, hiring, and coaching. Our stack runs Node.js and " +
				"React services against MongoDB Atlas, with background workers " +
				"handling search indexing and notifications. You will work with " +
				"product managers to turn the hiring roadmap into quarterly plans " +
				"the teams can actually deliver. We expect managers to keep one " +
				"foot in the code, reviewing pull requests and occasionally " +
				"shipping small changes themselves. The platform serves thousands " +
				"of daily applicants across Bangladesh, so reliability and " +
				"measured rollouts matter to us. You will also own incident " +
				"response for your group and run the weekly operations review " +
				"together with the infrastructure lead.",
			"requirements": []string{
				"8+ years in software engineering",
				"3+ years managing engineers",
				"Node.js", "MongoDB", "System design",
			},
			"salary":          250000,
			"location":        "Dhaka",
			"jobType":         "Full-time",
			"experienceLevel": 5,
			"position":        1,
			"company":         companyTechVision,
			"created_by":      userRahim,
			"applications":    []bson.ObjectID{},
			"createdAt":       seededAt.AddDate(0, 0, 14),
			"updatedAt":       seededAt.AddDate(0, 0, 14),
		}},
		{id: jobIntern, set: bson.M{
			"title": "QA Intern",
			"description": "Three-month paid internship on the quality team. You " +
				"will write end-to-end tests for the portal, triage bug reports, " +
				"and learn release engineering.",
			"requirements": []string{"Attention to detail", "Basic JavaScript"},
			"salary":          20000,
			"location":        "Dhaka",
			"jobType":         "Internship",
			"experienceLevel": 0,
			"position":        2,
			"company":         companyCloudNest,
			"created_by":      userFarzana,
			"applications":    []bson.ObjectID{},
			"createdAt":       seededAt.AddDate(0, 0, 16),
			"updatedAt":       seededAt.AddDate(0, 0, 16),
		}},
	}
}

func applications() []document {
	return []document{
		{id: appTanvirBackend, set: bson.M{
			"job":       jobBackend,
			"applicant": userTanvir,
			"status":    "pending",
			"createdAt": seededAt.AddDate(0, 0, 2),
			"updatedAt": seededAt.AddDate(0, 0, 2),
		}},
		{id: appTanvirFrontend, set: bson.M{
			"job":       jobFrontend,
			"applicant": userTanvir,
			"status":    "rejected",
			"createdAt": seededAt.AddDate(0, 0, 4),
			"updatedAt": seededAt.AddDate(0, 0, 6),
		}},
		{id: appNusratJunior, set: bson.M{
			"job":       jobJunior,
			"applicant": userNusrat,
			"status":    "accepted",
			"createdAt": seededAt.AddDate(0, 0, 6),
			"updatedAt": seededAt.AddDate(0, 0, 8),
		}},
	}
}
