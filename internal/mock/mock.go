// internal/mock/mock.go

// Package mock holds the built-in fallback datasets used when every remote
// source for a category is unreachable. The records are real products with
// plausible figures, so a run that falls back still produces a usable
// catalog file.
package mock

import (
	"github.com/hwcatalog/harvester/internal/hardware"
)

// Source tags records produced by the fallback datasets.
const Source = "mock"

// Dataset returns the fallback records for a category. The slice is freshly
// built on every call so callers may mutate it.
func Dataset(cat hardware.Category) hardware.Dataset {
	var records hardware.Dataset
	switch cat {
	case hardware.CategoryCPU:
		records = cpus()
	case hardware.CategoryGPU:
		records = gpus()
	case hardware.CategoryPhone:
		records = phones()
	}
	for i := range records {
		records[i].Category = cat
		records[i].Source = Source
		records[i].ID = hardware.MakeID(cat, records[i].Brand, records[i].Model)
	}
	return records
}

func price(v float64) *float64 { return &v }

func cpus() hardware.Dataset {
	return hardware.Dataset{
		{
			Brand: "Intel", Model: "Core i5-12400F",
			ReleaseDate: "2022-01-01", Price: price(1199),
			Description: "Intel 12th Gen Core i5, 6 cores / 12 threads, no integrated graphics",
			Cores:       6, Threads: 12, BaseClock: 2.5, BoostClock: 4.4,
			Socket: "LGA1700", TDP: 65, Cache: 18, Process: "10 nm",
		},
		{
			Brand: "AMD", Model: "Ryzen 5 5600X",
			ReleaseDate: "2020-11-01", Price: price(1499),
			Description: "AMD Ryzen 5 5600X, 6 cores / 12 threads, Zen 3",
			Cores:       6, Threads: 12, BaseClock: 3.7, BoostClock: 4.6,
			Socket: "AM4", TDP: 65, Cache: 32, Process: "7 nm",
		},
		{
			Brand: "Intel", Model: "Core i7-12700K",
			ReleaseDate: "2021-11-01", Price: price(2599),
			Description: "Intel 12th Gen Core i7, 12 cores / 20 threads",
			Cores:       12, Threads: 20, BaseClock: 3.6, BoostClock: 5.0,
			Socket: "LGA1700", TDP: 125, Cache: 25, Process: "10 nm",
			IntegratedGraphics: true,
		},
		{
			Brand: "AMD", Model: "Ryzen 7 5800X",
			ReleaseDate: "2020-11-01", Price: price(2299),
			Description: "AMD Ryzen 7 5800X, 8 cores / 16 threads",
			Cores:       8, Threads: 16, BaseClock: 3.8, BoostClock: 4.7,
			Socket: "AM4", TDP: 105, Cache: 32, Process: "7 nm",
		},
	}
}

func gpus() hardware.Dataset {
	return hardware.Dataset{
		{
			Brand: "NVIDIA", Model: "GeForce RTX 4060",
			ReleaseDate: "2023-01-01", Price: price(2499),
			Description: "NVIDIA GeForce RTX 4060, 8GB GDDR6, DLSS 3",
			VRAM:        8, BusWidth: 128, ShaderCores: 3072,
			CoreClock: 1830, MemoryClock: 17000, PowerConsumption: 115,
			RayTracing: true, UpscalingTech: "DLSS",
		},
		{
			Brand: "AMD", Model: "Radeon RX 7600",
			ReleaseDate: "2023-01-01", Price: price(2099),
			Description: "AMD Radeon RX 7600, 8GB GDDR6, FSR",
			VRAM:        8, BusWidth: 128, ShaderCores: 2048,
			CoreClock: 1720, MemoryClock: 18000, PowerConsumption: 165,
			RayTracing: true, UpscalingTech: "FSR",
		},
		{
			Brand: "NVIDIA", Model: "GeForce RTX 4070",
			ReleaseDate: "2023-01-01", Price: price(4799),
			Description: "NVIDIA GeForce RTX 4070, 12GB GDDR6X",
			VRAM:        12, BusWidth: 192, ShaderCores: 5888,
			CoreClock: 1920, MemoryClock: 21000, PowerConsumption: 200,
			RayTracing: true, UpscalingTech: "DLSS",
		},
		{
			Brand: "AMD", Model: "Radeon RX 7800 XT",
			ReleaseDate: "2023-01-01", Price: price(4599),
			Description: "AMD Radeon RX 7800 XT, 16GB GDDR6",
			VRAM:        16, BusWidth: 256, ShaderCores: 3840,
			CoreClock: 2124, MemoryClock: 19500, PowerConsumption: 263,
			RayTracing: true, UpscalingTech: "FSR",
		},
	}
}

func phones() hardware.Dataset {
	return hardware.Dataset{
		{
			Brand: "Apple", Model: "iPhone 15",
			ReleaseDate: "2023-09-01", Price: price(5999),
			Description: "Apple iPhone 15, A16 chip, Dynamic Island",
			Processor:   "A16", RAM: 6, Storage: 128,
			ScreenSize: 6.1, Resolution: "2556x1179", RefreshRate: 60,
			BatteryCapacity: 3349, Camera: "48MP+12MP", OS: "iOS", Support5G: true,
		},
		{
			Brand: "Xiaomi", Model: "Xiaomi 14",
			ReleaseDate: "2023-10-01", Price: price(3999),
			Description: "Xiaomi 14, Snapdragon 8 Gen 3, Leica optics",
			Processor:   "Snapdragon 8 Gen 3", RAM: 12, Storage: 256,
			ScreenSize: 6.36, Resolution: "2670x1200", RefreshRate: 120,
			BatteryCapacity: 4610, Camera: "50MP+50MP+50MP", OS: "Android", Support5G: true,
		},
		{
			Brand: "Huawei", Model: "Mate 60 Pro",
			ReleaseDate: "2023-08-01", Price: price(6999),
			Description: "Huawei Mate 60 Pro, Kirin 9000S, satellite calling",
			Processor:   "Kirin 9000S", RAM: 12, Storage: 512,
			ScreenSize: 6.82, Resolution: "2720x1260", RefreshRate: 120,
			BatteryCapacity: 5000, Camera: "50MP+48MP+12MP", OS: "Android", Support5G: true,
		},
		{
			Brand: "Samsung", Model: "Galaxy S24",
			ReleaseDate: "2024-01-01", Price: price(5699),
			Description: "Samsung Galaxy S24, Snapdragon 8 Gen 3",
			Processor:   "Snapdragon 8 Gen 3", RAM: 8, Storage: 256,
			ScreenSize: 6.2, Resolution: "2340x1080", RefreshRate: 120,
			BatteryCapacity: 4000, Camera: "50MP+12MP+10MP", OS: "Android", Support5G: true,
		},
	}
}
