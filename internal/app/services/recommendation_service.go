package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/app/models/dto"
	"github.com/savi/placement-portal/internal/app/repositories"
	"github.com/savi/placement-portal/internal/pkg/helpers"
)

// Match weights. A technical skill found in a posting's requirements is
// worth twice an interest found in its title or description.
const (
	skillWeight    = 2
	interestWeight = 1
)

// RecommendationService scores active postings against a student's skills
// and interests
type RecommendationService struct {
	studentRepo     *repositories.StudentRepository
	companyRepo     *repositories.CompanyRepository
	applicationRepo *repositories.ApplicationRepository
	logger          zerolog.Logger
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(
	studentRepo *repositories.StudentRepository,
	companyRepo *repositories.CompanyRepository,
	applicationRepo *repositories.ApplicationRepository,
	logger zerolog.Logger,
) *RecommendationService {
	return &RecommendationService{
		studentRepo:     studentRepo,
		companyRepo:     companyRepo,
		applicationRepo: applicationRepo,
		logger:          logger,
	}
}

// ScoreCompany computes the match percentage between one student profile
// and one posting. The score is the weighted share of the student's skills
// and interests found in the posting text, capped at 100.
func ScoreCompany(skills, interests []string, company *models.Company) int {
	totalWeight := skillWeight*len(skills) + interestWeight*len(interests)
	if totalWeight == 0 {
		return 0
	}

	requirements := strings.ToLower(company.Requirements)
	postingText := strings.ToLower(company.JobTitle + " " + company.JobDescription)

	matched := 0
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" && strings.Contains(requirements, skill) {
			matched += skillWeight
		}
	}
	for _, interest := range interests {
		interest = strings.ToLower(strings.TrimSpace(interest))
		if interest != "" && strings.Contains(postingText, interest) {
			matched += interestWeight
		}
	}

	score := int(math.Round(float64(matched) / float64(totalWeight) * 100))
	if score > 100 {
		score = 100
	}
	return score
}

// Recommend returns a page of active postings ranked by match percentage.
// Students with an empty profile get the plain newest-first listing marked
// as generic.
func (s *RecommendationService) Recommend(ctx context.Context, registrationNo string, page, perPage int) (*dto.RecommendationResponse, error) {
	student, err := s.studentRepo.GetByRegistrationNo(ctx, registrationNo)
	if err != nil {
		return nil, err
	}

	companies, err := s.companyRepo.FindAll(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}

	recommendationType := "personalized"
	if len(student.Skills.Technical) == 0 && len(student.Interests) == 0 {
		recommendationType = "generic"
	}

	scored := make([]dto.ScoredCompany, 0, len(companies))
	for i := range companies {
		score := ScoreCompany(student.Skills.Technical, student.Interests, &companies[i])
		scored = append(scored, dto.ScoredCompany{Company: companies[i], MatchPercentage: score})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchPercentage != scored[j].MatchPercentage {
			return scored[i].MatchPercentage > scored[j].MatchPercentage
		}
		return scored[i].PostedDate > scored[j].PostedDate
	})

	total := int64(len(scored))
	start := int(helpers.Skip(page, perPage))
	if start > len(scored) {
		start = len(scored)
	}
	end := start + perPage
	if end > len(scored) {
		end = len(scored)
	}

	return &dto.RecommendationResponse{
		Companies:          scored[start:end],
		Pagination:         helpers.NewPagination(total, page, perPage),
		RecommendationType: recommendationType,
	}, nil
}

// requirementTokens breaks a posting's requirements into comparable terms.
func requirementTokens(requirements string) []string {
	fields := strings.FieldsFunc(strings.ToLower(requirements), func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || r == ' ' || r == '\n' || r == '\t'
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) > 2 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// SimilarCompanies ranks other active postings by how closely they resemble
// the given one: shared requirement terms, same job type and same workplace.
func (s *RecommendationService) SimilarCompanies(ctx context.Context, companyID string, limit int) ([]dto.ScoredCompany, error) {
	oid, err := parseObjectID(companyID)
	if err != nil {
		return nil, err
	}
	base, err := s.companyRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	companies, err := s.companyRepo.FindAll(ctx, bson.M{"active": true, "_id": bson.M{"$ne": oid}})
	if err != nil {
		return nil, err
	}

	tokens := requirementTokens(base.Requirements)
	totalWeight := len(tokens) + 3
	scored := make([]dto.ScoredCompany, 0, len(companies))
	for i := range companies {
		other := &companies[i]
		otherText := strings.ToLower(other.Requirements + " " + other.JobTitle + " " + other.JobDescription)

		matched := 0
		for _, token := range tokens {
			if strings.Contains(otherText, token) {
				matched++
			}
		}
		if base.JobType != "" && strings.EqualFold(base.JobType, other.JobType) {
			matched += 2
		}
		if base.WorkPlace != "" && strings.EqualFold(base.WorkPlace, other.WorkPlace) {
			matched++
		}
		if matched == 0 {
			continue
		}

		score := int(math.Round(float64(matched) / float64(totalWeight) * 100))
		if score > 100 {
			score = 100
		}
		scored = append(scored, dto.ScoredCompany{Company: *other, MatchPercentage: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchPercentage != scored[j].MatchPercentage {
			return scored[i].MatchPercentage > scored[j].MatchPercentage
		}
		return scored[i].PostedDate > scored[j].PostedDate
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// trendingWindowDays bounds the application window used for trending.
const trendingWindowDays = 30

// Trending ranks companies by application volume over the last thirty
// days, with recent applications weighing more than older ones.
func (s *RecommendationService) Trending(ctx context.Context, limit int) ([]dto.TrendingCompany, error) {
	now := time.Now().UTC()
	since := now.AddDate(0, 0, -trendingWindowDays)

	applications, err := s.applicationRepo.FindSince(ctx, since)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		count int64
		score float64
	}
	buckets := map[primitive.ObjectID]*bucket{}
	for _, application := range applications {
		b, ok := buckets[application.CompanyID]
		if !ok {
			b = &bucket{}
			buckets[application.CompanyID] = b
		}
		ageDays := now.Sub(application.AppliedDate).Hours() / 24
		if ageDays < 0 {
			ageDays = 0
		}
		b.count++
		b.score += 1 + (trendingWindowDays-ageDays)/trendingWindowDays
	}

	trending := make([]dto.TrendingCompany, 0, len(buckets))
	for companyID, b := range buckets {
		company, err := s.companyRepo.GetByID(ctx, companyID)
		if err != nil {
			continue
		}
		trending = append(trending, dto.TrendingCompany{
			Company:          *company,
			ApplicationCount: b.count,
			TrendScore:       math.Round(b.score*100) / 100,
		})
	}

	sort.SliceStable(trending, func(i, j int) bool {
		if trending[i].TrendScore != trending[j].TrendScore {
			return trending[i].TrendScore > trending[j].TrendScore
		}
		return trending[i].ApplicationCount > trending[j].ApplicationCount
	})
	if limit > 0 && len(trending) > limit {
		trending = trending[:limit]
	}
	return trending, nil
}
