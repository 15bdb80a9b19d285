// internal/hardware/types.go

// Package hardware defines the canonical record model shared by every stage
// of the harvesting pipeline, along with identity hashing, deduplication and
// dataset diffing.
package hardware

import (
	"encoding/json"
	"fmt"
)

// Category identifies a hardware category. Each category is harvested,
// validated and persisted independently.
type Category string

const (
	CategoryCPU   Category = "cpu"
	CategoryGPU   Category = "gpu"
	CategoryPhone Category = "phone"
)

// Categories lists all known categories in pipeline order.
var Categories = []Category{CategoryCPU, CategoryGPU, CategoryPhone}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryCPU, CategoryGPU, CategoryPhone:
		return true
	}
	return false
}

// Record is a canonical hardware record. Every record carries the common
// fields; the category-specific fields are populated only for the record's
// own category, and MarshalJSON emits exactly the canonical schema for that
// category so a persisted dataset never mixes field sets.
//
// Record is comparable except for Price; use Equal for structural equality.
type Record struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	ReleaseDate string   `json:"releaseDate"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	Source      string   `json:"source"`

	// CPU fields.
	Cores              int     `json:"cores"`
	Threads            int     `json:"threads"`
	BaseClock          float64 `json:"baseClock"`  // GHz
	BoostClock         float64 `json:"boostClock"` // GHz
	Socket             string  `json:"socket"`
	TDP                int     `json:"tdp"`   // W
	Cache              float64 `json:"cache"` // MB
	IntegratedGraphics bool    `json:"integratedGraphics"`
	Process            string  `json:"process"`

	// GPU fields.
	VRAM             int    `json:"vram"`     // GB
	BusWidth         int    `json:"busWidth"` // bits
	ShaderCores      int    `json:"shaderCores"`
	CoreClock        int    `json:"coreClock"`   // MHz
	MemoryClock      int    `json:"memoryClock"` // MHz
	PowerConsumption int    `json:"powerConsumption"` // W
	RayTracing       bool   `json:"rayTracing"`
	UpscalingTech    string `json:"upscalingTech"`

	// Phone fields.
	Processor       string  `json:"processor"`
	RAM             int     `json:"ram"`     // GB
	Storage         int     `json:"storage"` // GB
	ScreenSize      float64 `json:"screenSize"` // inches
	Resolution      string  `json:"resolution"` // WxH
	RefreshRate     int     `json:"refreshRate"` // Hz
	BatteryCapacity int     `json:"batteryCapacity"` // mAh
	Camera          string  `json:"camera"`
	OS              string  `json:"os"`
	Support5G       bool    `json:"support5G"`
}

// common holds the fields shared by every category.
type common struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	ReleaseDate string   `json:"releaseDate"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
}

type cpuView struct {
	common
	Cores              int     `json:"cores"`
	Threads            int     `json:"threads"`
	BaseClock          float64 `json:"baseClock"`
	BoostClock         float64 `json:"boostClock"`
	Socket             string  `json:"socket"`
	TDP                int     `json:"tdp"`
	Cache              float64 `json:"cache"`
	IntegratedGraphics bool    `json:"integratedGraphics"`
	Process            string  `json:"process"`
}

type gpuView struct {
	common
	VRAM             int    `json:"vram"`
	BusWidth         int    `json:"busWidth"`
	ShaderCores      int    `json:"shaderCores"`
	CoreClock        int    `json:"coreClock"`
	MemoryClock      int    `json:"memoryClock"`
	PowerConsumption int    `json:"powerConsumption"`
	RayTracing       bool   `json:"rayTracing"`
	UpscalingTech    string `json:"upscalingTech"`
}

type phoneView struct {
	common
	Processor       string  `json:"processor"`
	RAM             int     `json:"ram"`
	Storage         int     `json:"storage"`
	ScreenSize      float64 `json:"screenSize"`
	Resolution      string  `json:"resolution"`
	RefreshRate     int     `json:"refreshRate"`
	BatteryCapacity int     `json:"batteryCapacity"`
	Camera          string  `json:"camera"`
	OS              string  `json:"os"`
	Support5G       bool    `json:"support5G"`
}

func (r Record) commonView() common {
	return common{
		ID:          r.ID,
		Category:    r.Category,
		Brand:       r.Brand,
		Model:       r.Model,
		ReleaseDate: r.ReleaseDate,
		Price:       r.Price,
		Description: r.Description,
		Source:      r.Source,
	}
}

// MarshalJSON serializes the canonical schema for the record's category.
func (r Record) MarshalJSON() ([]byte, error) {
	switch r.Category {
	case CategoryCPU:
		return json.Marshal(cpuView{
			common:             r.commonView(),
			Cores:              r.Cores,
			Threads:            r.Threads,
			BaseClock:          r.BaseClock,
			BoostClock:         r.BoostClock,
			Socket:             r.Socket,
			TDP:                r.TDP,
			Cache:              r.Cache,
			IntegratedGraphics: r.IntegratedGraphics,
			Process:            r.Process,
		})
	case CategoryGPU:
		return json.Marshal(gpuView{
			common:           r.commonView(),
			VRAM:             r.VRAM,
			BusWidth:         r.BusWidth,
			ShaderCores:      r.ShaderCores,
			CoreClock:        r.CoreClock,
			MemoryClock:      r.MemoryClock,
			PowerConsumption: r.PowerConsumption,
			RayTracing:       r.RayTracing,
			UpscalingTech:    r.UpscalingTech,
		})
	case CategoryPhone:
		return json.Marshal(phoneView{
			common:          r.commonView(),
			Processor:       r.Processor,
			RAM:             r.RAM,
			Storage:         r.Storage,
			ScreenSize:      r.ScreenSize,
			Resolution:      r.Resolution,
			RefreshRate:     r.RefreshRate,
			BatteryCapacity: r.BatteryCapacity,
			Camera:          r.Camera,
			OS:              r.OS,
			Support5G:       r.Support5G,
		})
	default:
		return nil, fmt.Errorf("cannot marshal record %q: unknown category %q", r.ID, r.Category)
	}
}

// Equal reports structural equality over the full record, price compared by
// value. A changed spec or price makes two records unequal even when the id
// matches.
func (r Record) Equal(o Record) bool {
	if (r.Price == nil) != (o.Price == nil) {
		return false
	}
	if r.Price != nil && *r.Price != *o.Price {
		return false
	}
	r.Price, o.Price = nil, nil
	return r == o
}

// Dataset is the ordered record sequence for one category.
type Dataset []Record

// IDs returns the record ids in dataset order.
func (d Dataset) IDs() []string {
	ids := make([]string, len(d))
	for i, r := range d {
		ids[i] = r.ID
	}
	return ids
}

// ByID indexes the dataset by record id. Later duplicates are ignored so the
// index reflects first-occurrence-wins order.
func (d Dataset) ByID() map[string]Record {
	m := make(map[string]Record, len(d))
	for _, r := range d {
		if _, ok := m[r.ID]; !ok {
			m[r.ID] = r
		}
	}
	return m
}
