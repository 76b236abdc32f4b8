package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-course-store/internal/model"
)

// CatalogService holds the course catalog loaded at startup. The structure
// is read-only after load: listing keeps file order, video lookups go
// through an index built once.
type CatalogService struct {
	categories []model.Category
	videos     map[int64]videoRef
	byCategory map[int64]int
}

type videoRef struct {
	video      model.Video
	categoryID int64
}

func NewCatalogService(catalogFile string) (*CatalogService, error) {
	categories, err := loadCatalogFile(catalogFile)
	if err != nil {
		return nil, err
	}

	s := &CatalogService{
		categories: categories,
		videos:     map[int64]videoRef{},
		byCategory: map[int64]int{},
	}

	for i, category := range categories {
		if _, exists := s.byCategory[category.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate category id %d", model.ErrCatalogIntegrity, category.ID)
		}
		s.byCategory[category.ID] = i

		for _, video := range category.Videos {
			if _, exists := s.videos[video.ID]; exists {
				return nil, fmt.Errorf("%w: duplicate video id %d", model.ErrCatalogIntegrity, video.ID)
			}
			s.videos[video.ID] = videoRef{video: video, categoryID: category.ID}
		}
	}

	return s, nil
}

// Categories returns the catalog in insertion order.
func (s *CatalogService) Categories() []model.Category {
	return s.categories
}

func (s *CatalogService) CategoryByID(id int64) (model.Category, bool) {
	i, ok := s.byCategory[id]
	if !ok {
		return model.Category{}, false
	}
	return s.categories[i], true
}

// FindVideo resolves a video and its parent category id in O(1).
func (s *CatalogService) FindVideo(videoID int64) (model.Video, int64, bool) {
	ref, ok := s.videos[videoID]
	if !ok {
		return model.Video{}, 0, false
	}
	return ref.video, ref.categoryID, true
}

func loadCatalogFile(path string) ([]model.Category, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("catalog file path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) || (err == nil && len(strings.TrimSpace(string(data))) == 0) {
		if err := seedSampleCatalog(path); err != nil {
			return nil, err
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	var categories []model.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no categories", path)
	}

	return categories, nil
}

const samplePreviewURL = "https://www.w3schools.com/html/mov_bbb.mp4"

func seedSampleCatalog(path string) error {
	pythonVideos := make([]model.Video, 0, 20)
	for i := 1; i <= 20; i++ {
		pythonVideos = append(pythonVideos, model.Video{
			ID:         int64(100 + i),
			Title:      fmt.Sprintf("1-%d: Python基础知识点 %d", i, i),
			Price:      5,
			PreviewURL: samplePreviewURL,
		})
	}

	categories := []model.Category{
		{ID: 1, Name: "Python入门基础", Price: 128, Videos: pythonVideos},
		{ID: 2, Name: "Vue.js从零到一", Price: 128, Videos: []model.Video{
			{ID: 201, Title: "2-1：初识Vue", Price: 5, PreviewURL: samplePreviewURL},
			{ID: 202, Title: "2-2：组件化开发", Price: 5, PreviewURL: samplePreviewURL},
		}},
	}

	data, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
