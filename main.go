package main

import (
	"github.com/quillhq/quill/config"
	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/routes"
	"github.com/quillhq/quill/store"
	"github.com/quillhq/quill/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{})

	r := routes.SetupRouter(store.NewGormPosts(db), store.NewGormUsers(db))

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
