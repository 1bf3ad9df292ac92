package domain

// AssetLinks are the 3D asset URLs the mobile app loads per feature.
type AssetLinks struct {
	Finance     string `json:"finance"`
	Love        string `json:"love"`
	Goals       string `json:"goals"`
	MicroTiming string `json:"micro_timing"`
	Wallpaper   string `json:"wallpaper"`
}

// AssetSettings wraps the settings/assets response.
type AssetSettings struct {
	Success bool       `json:"success"`
	Assets  AssetLinks `json:"assets"`
}
