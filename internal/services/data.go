package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/linkdeck/linkdeck/internal/apperr"
)

type DataService struct {
	groups  *GroupService
	sites   *SiteService
	configs *ConfigService
}

func NewDataService(groups *GroupService, sites *SiteService, configs *ConfigService) *DataService {
	return &DataService{groups: groups, sites: sites, configs: configs}
}

type ExportedGroup struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	OrderNum int    `json:"order_num"`
}

type ExportedSite struct {
	ID          uint   `json:"id"`
	GroupID     uint   `json:"group_id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	OrderNum    int    `json:"order_num"`
}

// ExportDocument is the portable snapshot of the whole dataset, minus
// internal timestamps.
type ExportDocument struct {
	Groups  []ExportedGroup   `json:"groups"`
	Sites   []ExportedSite    `json:"sites"`
	Configs map[string]string `json:"configs"`
}

// ImportDocument mirrors ExportDocument on the way in. Config values arrive
// untyped so non-string values can be skipped instead of failing the decode.
type ImportDocument struct {
	Groups  []ExportedGroup        `json:"groups"`
	Sites   []ExportedSite         `json:"sites"`
	Configs map[string]interface{} `json:"configs"`
}

// ImportResult counts only the items that were actually written.
type ImportResult struct {
	GroupsCount  int `json:"groupsCount"`
	SitesCount   int `json:"sitesCount"`
	ConfigsCount int `json:"configsCount"`
}

func (s *DataService) Export() (*ExportDocument, error) {
	groups, err := s.groups.FindAll()

	if err != nil {
		return nil, err
	}

	sites, err := s.sites.FindAll()

	if err != nil {
		return nil, err
	}

	configs, err := s.configs.AsMap()

	if err != nil {
		return nil, err
	}

	doc := &ExportDocument{
		Groups:  make([]ExportedGroup, 0, len(groups)),
		Sites:   make([]ExportedSite, 0, len(sites)),
		Configs: configs,
	}

	for _, group := range groups {
		doc.Groups = append(doc.Groups, ExportedGroup{
			ID:       group.ID,
			Name:     group.Name,
			OrderNum: group.OrderNum,
		})
	}

	for _, site := range sites {
		doc.Sites = append(doc.Sites, ExportedSite{
			ID:          site.ID,
			GroupID:     site.GroupID,
			Name:        site.Name,
			URL:         site.URL,
			Icon:        site.Icon,
			Description: site.Description,
			Notes:       site.Notes,
			OrderNum:    site.OrderNum,
		})
	}

	return doc, nil
}

// Import replays a document item by item: groups first, recording an
// old-id -> new-id mapping, then sites with group_id rewritten through that
// mapping (an unmapped id is used verbatim), then config upserts. A failed
// item is recorded and the batch continues; whatever succeeded stays
// committed, and a single aggregated error is returned at the end. Counts
// reflect successes only.
func (s *DataService) Import(doc ImportDocument) (ImportResult, error) {
	var result ImportResult
	var failures []string

	groupIDMap := make(map[uint]uint, len(doc.Groups))

	for _, group := range doc.Groups {
		created, err := s.groups.Create(group.Name, group.OrderNum)

		if err != nil {
			log.Printf("Failed to import group %q: %v", group.Name, err)
			failures = append(failures, fmt.Sprintf("group %q: %v", group.Name, err))
			continue
		}

		if group.ID != 0 {
			groupIDMap[group.ID] = created.ID
		}

		result.GroupsCount++
	}

	for _, site := range doc.Sites {
		groupID := site.GroupID

		if mapped, ok := groupIDMap[site.GroupID]; ok {
			groupID = mapped
		}

		_, err := s.sites.Create(CreateSiteParams{
			GroupID:     groupID,
			Name:        site.Name,
			URL:         site.URL,
			Icon:        site.Icon,
			Description: site.Description,
			Notes:       site.Notes,
			OrderNum:    site.OrderNum,
		})

		if err != nil {
			log.Printf("Failed to import site %q: %v", site.Name, err)
			failures = append(failures, fmt.Sprintf("site %q: %v", site.Name, err))
			continue
		}

		result.SitesCount++
	}

	for key, value := range doc.Configs {
		text, ok := value.(string)

		if !ok {
			continue
		}

		if _, err := s.configs.Upsert(key, text); err != nil {
			log.Printf("Failed to import config %q: %v", key, err)
			failures = append(failures, fmt.Sprintf("config %q: %v", key, err))
			continue
		}

		result.ConfigsCount++
	}

	if len(failures) > 0 {
		return result, apperr.New(apperr.Internal, "import finished with errors: "+strings.Join(failures, "; "))
	}

	return result, nil
}
