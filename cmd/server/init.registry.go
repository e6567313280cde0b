package main

import (
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gopait/erxes-integrations/config"
	"github.com/gopait/erxes-integrations/internal/global"
)

func InitRegistry() {
	// Khởi tạo registry và đăng ký các collections
	err := InitCollections(global.MongoDB_Session, global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections khởi tạo và đăng ký các collections MongoDB
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)

	colNames := []string{
		global.MongoDB_ColNames.Accounts,
		global.MongoDB_ColNames.Integrations,
		global.MongoDB_ColNames.FbCustomers,
		global.MongoDB_ColNames.FbConversations,
		global.MongoDB_ColNames.FbMessages,
		global.MongoDB_ColNames.FbPosts,
		global.MongoDB_ColNames.FbComments,
		global.MongoDB_ColNames.GmailCustomers,
		global.MongoDB_ColNames.GmailConversations,
		global.MongoDB_ColNames.GmailMessages,
		global.MongoDB_ColNames.NylasGmailCustomers,
		global.MongoDB_ColNames.NylasGmailConversations,
		global.MongoDB_ColNames.NylasGmailMessages,
		global.MongoDB_ColNames.CallProCustomers,
		global.MongoDB_ColNames.CallProConversations,
		global.MongoDB_ColNames.CallProMessages,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}
	}

	return nil
}
