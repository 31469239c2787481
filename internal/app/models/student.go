package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student is the primary identity document. The registration number is the
// student's identity everywhere: JWT subject, message addressing and
// application ownership all use it rather than the Mongo object id.
type Student struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	RegistrationNo string             `bson:"registration_no" json:"registration_no"`
	RollNumber     string             `bson:"roll_number" json:"roll_number"`
	Name           string             `bson:"name" json:"name"`
	EmailID        string             `bson:"email_id" json:"email_id"`
	Password       string             `bson:"password" json:"-"`
	Registered     bool               `bson:"registered" json:"registered"`
	MobileNo       string             `bson:"mobile_no" json:"mobile_no"`
	Gender         string             `bson:"gender" json:"gender"`
	Disability     string             `bson:"disability" json:"disability"`
	Address        Address            `bson:"address" json:"address"`
	Father         Parent             `bson:"father" json:"father"`
	Mother         Parent             `bson:"mother" json:"mother"`
	Specialization string             `bson:"specialization" json:"specialization"`
	Interests      []string           `bson:"interests" json:"interests"`
	PassOutYear    int                `bson:"pass_out_year" json:"pass_out_year"`
	AdmissionYear  int                `bson:"year_of_admission" json:"year_of_admission"`
	Marks          float64            `bson:"marks" json:"marks"`
	Attendance     float64            `bson:"attendance" json:"attendance"`
	Placed         bool               `bson:"placed" json:"placed"`
	Skills         Skills             `bson:"skills" json:"skills"`
	Experience     []Experience       `bson:"experience" json:"experience"`
	Projects       []Project          `bson:"projects" json:"projects"`
	Education      Education          `bson:"education" json:"education"`
	Certifications []Certification    `bson:"certifications" json:"certifications"`
	CV             string             `bson:"cv" json:"cv"`
	Companies      CompanyBuckets     `bson:"companies" json:"companies"`
}

// Address is the student's postal address.
type Address struct {
	Street   string `bson:"street" json:"street"`
	Pin      string `bson:"pin" json:"pin"`
	District string `bson:"district" json:"district"`
	State    string `bson:"state" json:"state"`
	Country  string `bson:"country" json:"country"`
}

// Parent holds guardian contact details.
type Parent struct {
	Name     string `bson:"name" json:"name"`
	MobileNo string `bson:"mobile_no" json:"mobile_no"`
	EmailID  string `bson:"email_id" json:"email_id"`
}

// Skills separates technical from non-technical skills.
type Skills struct {
	Technical    []string `bson:"technical" json:"technical"`
	NonTechnical []string `bson:"non_technical" json:"non_technical"`
}

// Experience is one prior job entry.
type Experience struct {
	CompanyName string   `bson:"company_name" json:"company_name"`
	Position    string   `bson:"position" json:"position"`
	StartDate   string   `bson:"start_date" json:"start_date"`
	EndDate     string   `bson:"end_date" json:"end_date"`
	Description string   `bson:"description" json:"description"`
	SkillsUsed  []string `bson:"skills_used" json:"skills_used"`
}

// Project is one portfolio project entry.
type Project struct {
	ProjectName      string   `bson:"project_name" json:"project_name"`
	Description      string   `bson:"description" json:"description"`
	TechnologiesUsed []string `bson:"technologies_used" json:"technologies_used"`
	StartDate        string   `bson:"start_date" json:"start_date"`
	EndDate          string   `bson:"end_date" json:"end_date"`
	GithubLink       string   `bson:"github_link" json:"github_link"`
	LiveLink         string   `bson:"live_link" json:"live_link"`
}

// Education holds board and graduation marks.
type Education struct {
	Tenth      float64 `bson:"tenth" json:"tenth"`
	Twelfth    float64 `bson:"twelfth" json:"twelfth"`
	Graduation string  `bson:"graduation" json:"graduation"`
}

// Certification is one certificate entry; PDF is the relative path of the
// uploaded document under the certifications subdirectory, empty when no
// file was uploaded.
type Certification struct {
	CertificateName  string `bson:"certificate_name" json:"certificate_name"`
	InstituteName    string `bson:"institute_name" json:"institute_name"`
	VerificationLink string `bson:"verification_link" json:"verification_link"`
	PDF              string `bson:"pdf" json:"pdf"`
}

// CompanyBuckets tracks a student's relationship with companies as lists of
// company object ids copied onto the student document.
type CompanyBuckets struct {
	Applied               []primitive.ObjectID `bson:"applied" json:"applied"`
	Rejected              []primitive.ObjectID `bson:"rejected" json:"rejected"`
	InterviewsAttended    []primitive.ObjectID `bson:"interviews_attended" json:"interviews_attended"`
	InterviewsNotAttended []primitive.ObjectID `bson:"interviews_not_attended" json:"interviews_not_attended"`
}

// NewStudentSkeleton builds the full student document inserted at signup.
// Every field the collection validator requires is present so later partial
// updates never fail validation.
func NewStudentSkeleton(registrationNo, email, passwordHash, name string) *Student {
	if name == "" {
		name = "New Student"
	}
	return &Student{
		RegistrationNo: registrationNo,
		RollNumber:     registrationNo,
		Name:           name,
		EmailID:        email,
		Password:       passwordHash,
		Registered:     true,
		Gender:         "Other",
		Disability:     "No",
		Interests:      []string{},
		Skills:         Skills{Technical: []string{}, NonTechnical: []string{}},
		Experience:     []Experience{},
		Projects:       []Project{},
		Certifications: []Certification{},
		Companies: CompanyBuckets{
			Applied:               []primitive.ObjectID{},
			Rejected:              []primitive.ObjectID{},
			InterviewsAttended:    []primitive.ObjectID{},
			InterviewsNotAttended: []primitive.ObjectID{},
		},
	}
}
