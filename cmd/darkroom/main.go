package main

import (
	"github.com/bornholm/darkroom/internal/command"
	"github.com/bornholm/darkroom/internal/command/assets"
	"github.com/bornholm/darkroom/internal/command/shares"

	// Asset stores
	_ "github.com/bornholm/darkroom/internal/adapter/cloudinary"
	_ "github.com/bornholm/darkroom/internal/adapter/memory"
	_ "github.com/bornholm/darkroom/internal/adapter/minio"
	_ "github.com/bornholm/darkroom/internal/adapter/s3"
)

func main() {
	command.Main(
		"darkroom",
		"Darkroom maintenance tools",
		shares.Command(),
		assets.Command(),
	)
}
