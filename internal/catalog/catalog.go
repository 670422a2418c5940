// Package catalog implements lamp queries and lamp editing on top of GORM.
package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"lamp_catalog/internal/domain"

	"gorm.io/gorm"
)

// PageSize is the number of lamps per catalog page
const PageSize = 10

var (
	// ErrLampNotFound is returned when no lamp has the requested id
	ErrLampNotFound = errors.New("lamp not found")
	// ErrInvalidFilter is returned for malformed list query parameters
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrDuplicateArticle is returned when an edit would reuse another lamp's article
	ErrDuplicateArticle = errors.New("article already in use")
)

// SortFields are the columns the list can be ordered by
var SortFields = []string{"brand", "price", "power_watts", "height_cm", "color", "lamp_type"}

// GroupFields are the columns the list can be grouped by
var GroupFields = []string{"lamp_type", "has_dimmer", "color"}

// ListParams is a parsed catalog query
type ListParams struct {
	LampType  domain.LampKind `json:"lamp_type,omitempty"`
	HasDimmer *bool           `json:"has_dimmer,omitempty"`
	MinPower  *uint           `json:"min_power,omitempty"`
	MaxPower  *uint           `json:"max_power,omitempty"`
	Search    string          `json:"search,omitempty"`
	SortBy    string          `json:"sort_by"`
	SortDesc  bool            `json:"sort_desc"`
	GroupBy   string          `json:"group_by,omitempty"`
	Page      int             `json:"page"`
}

// Row is one lamp of a result page with its group attached
type Row struct {
	Lamp       domain.Lamp `json:"lamp"`
	GroupKey   string      `json:"group_key,omitempty"`
	GroupLabel string      `json:"group_label,omitempty"`
}

// Page is one page of catalog results
type Page struct {
	Rows       []Row `json:"lamps"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func parsePower(q url.Values, key string) (*uint, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a non-negative integer", ErrInvalidFilter, key)
	}
	p := uint(v)
	return &p, nil
}

// ParseListParams reads filters, sorting, grouping and the page from a query string.
// Unknown sort or group fields fall back to the defaults.
func ParseListParams(q url.Values) (ListParams, error) {
	p := ListParams{SortBy: "brand", Page: 1}

	if kind := domain.LampKind(strings.TrimSpace(q.Get("lamp_type"))); kind != "" {
		if !kind.Valid() {
			return p, fmt.Errorf("%w: unknown lamp_type %q", ErrInvalidFilter, kind)
		}
		p.LampType = kind
	}
	if raw := strings.TrimSpace(q.Get("has_dimmer")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			v = true // a bare checkbox value means "with dimmer"
		}
		p.HasDimmer = &v
	}
	var err error
	if p.MinPower, err = parsePower(q, "min_power"); err != nil {
		return p, err
	}
	if p.MaxPower, err = parsePower(q, "max_power"); err != nil {
		return p, err
	}
	p.Search = strings.TrimSpace(q.Get("search"))
	if sortBy := q.Get("sort_by"); contains(SortFields, sortBy) {
		p.SortBy = sortBy
	}
	p.SortDesc = q.Get("sort_order") == "desc"
	if groupBy := q.Get("group_by"); contains(GroupFields, groupBy) {
		p.GroupBy = groupBy
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	return p, nil
}

// CacheKey is a stable key identifying the query
func (p ListParams) CacheKey() string {
	var b strings.Builder
	b.WriteString("type=" + string(p.LampType))
	if p.HasDimmer != nil {
		b.WriteString(":dimmer=" + strconv.FormatBool(*p.HasDimmer))
	}
	if p.MinPower != nil {
		b.WriteString(":min=" + strconv.FormatUint(uint64(*p.MinPower), 10))
	}
	if p.MaxPower != nil {
		b.WriteString(":max=" + strconv.FormatUint(uint64(*p.MaxPower), 10))
	}
	b.WriteString(":q=" + url.QueryEscape(strings.ToLower(p.Search)))
	b.WriteString(":sort=" + p.SortBy + ":desc=" + strconv.FormatBool(p.SortDesc))
	b.WriteString(":group=" + p.GroupBy)
	b.WriteString(":page=" + strconv.Itoa(p.Page))
	return b.String()
}

// likeEscaper makes search terms match literally inside LIKE ... ESCAPE '!'.
// '!' needs no quoting in either MySQL or SQLite string literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (p ListParams) filter(db *gorm.DB) *gorm.DB {
	query := db.Model(&domain.Lamp{})
	if p.LampType != "" {
		query = query.Where("lamp_type = ?", p.LampType)
	}
	if p.HasDimmer != nil {
		query = query.Where("has_dimmer = ?", *p.HasDimmer)
	}
	if p.MinPower != nil {
		query = query.Where("power_watts >= ?", *p.MinPower)
	}
	if p.MaxPower != nil {
		query = query.Where("power_watts <= ?", *p.MaxPower)
	}
	if p.Search != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(p.Search)) + "%"
		query = query.Where(
			"LOWER(article) LIKE ? ESCAPE '!' OR LOWER(brand) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'",
			like, like, like,
		)
	}
	return query
}

func (p ListParams) order(query *gorm.DB) *gorm.DB {
	// column names come from the SortFields/GroupFields allow lists
	if p.GroupBy != "" {
		query = query.Order(p.GroupBy)
	}
	dir := "asc"
	if p.SortDesc {
		dir = "desc"
	}
	return query.Order(p.SortBy + " " + dir).Order("id")
}

// groupOf returns the group key and label of lamp for the group field
func groupOf(groupBy string, lamp domain.Lamp) (string, string) {
	switch groupBy {
	case "lamp_type":
		return string(lamp.LampType), lamp.LampType.Label()
	case "has_dimmer":
		if lamp.HasDimmer {
			return "true", "With dimmer"
		}
		return "false", "Without dimmer"
	case "color":
		return lamp.Color, lamp.Color
	}
	return "", ""
}

// List runs the query and returns the requested page
func List(db *gorm.DB, p ListParams) (Page, error) {
	var total int64
	if err := p.filter(db).Count(&total).Error; err != nil {
		return Page{}, fmt.Errorf("count lamps: %w", err)
	}
	var lamps []domain.Lamp
	offset := (p.Page - 1) * PageSize
	if err := p.order(p.filter(db)).Offset(offset).Limit(PageSize).Find(&lamps).Error; err != nil {
		return Page{}, fmt.Errorf("list lamps: %w", err)
	}
	rows := make([]Row, len(lamps))
	for i, lamp := range lamps {
		key, label := groupOf(p.GroupBy, lamp)
		rows[i] = Row{Lamp: lamp, GroupKey: key, GroupLabel: label}
	}
	return Page{
		Rows:       rows,
		Page:       p.Page,
		PageSize:   PageSize,
		Total:      total,
		TotalPages: (int(total) + PageSize - 1) / PageSize,
	}, nil
}

// Get loads one lamp
func Get(db *gorm.DB, id uint) (domain.Lamp, error) {
	var lamp domain.Lamp
	if err := db.First(&lamp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lamp, ErrLampNotFound
		}
		return lamp, fmt.Errorf("get lamp %d: %w", id, err)
	}
	return lamp, nil
}

// ListForMerchandiser returns every lamp, newest first
func ListForMerchandiser(db *gorm.DB) ([]domain.Lamp, error) {
	var lamps []domain.Lamp
	if err := db.Order("created_at desc").Order("id desc").Find(&lamps).Error; err != nil {
		return nil, fmt.Errorf("list lamps: %w", err)
	}
	return lamps, nil
}

// ListLampTypes returns the lamp type lookup table
func ListLampTypes(db *gorm.DB) ([]domain.LampType, error) {
	var types []domain.LampType
	if err := db.Order("name").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("list lamp types: %w", err)
	}
	return types, nil
}
