package bootstrap

import (
	"clabs.com/website/internal/entity"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IPSeed is one showcase profile together with the rows it owns.
type IPSeed struct {
	Profile   entity.IPProfile
	Platforms []entity.PlatformStat
	Works     []entity.IPWork
}

func SeedCategories(db *gorm.DB) error {
	defaultCategories := []entity.Category{
		{Slug: "basics", Name: "区块链基础", Description: "从零开始理解区块链、钱包与链上交互", Icon: "fas fa-cube", SortOrder: 1},
		{Slug: "defi", Name: "DeFi 去中心化金融", Description: "借贷、DEX 与流动性挖矿", Icon: "fas fa-coins", SortOrder: 2},
		{Slug: "nft", Name: "NFT 非同质化代币", Description: "铸造、交易与版权", Icon: "fas fa-image", SortOrder: 3},
		{Slug: "dao", Name: "DAO 去中心化自治组织", Description: "治理代币与社区投票", Icon: "fas fa-users", SortOrder: 4},
		{Slug: "dapp", Name: "DApp 去中心化应用", Description: "智能合约应用的开发与使用", Icon: "fas fa-code", SortOrder: 5},
		{Slug: "wallet", Name: "钱包与安全", Description: "私钥管理与常见骗局防范", Icon: "fas fa-shield-alt", SortOrder: 6},
		{Slug: "trading", Name: "交易与投资", Description: "资金管理、止损与行情分析", Icon: "fas fa-chart-line", SortOrder: 7},
		{Slug: "gaming", Name: "GameFi 链游", Description: "链游经济模型入门", Icon: "fas fa-gamepad", SortOrder: 8},
		{Slug: "metaverse", Name: "元宇宙", Description: "虚拟世界与数字资产", Icon: "fas fa-vr-cardboard", SortOrder: 9},
	}

	for _, category := range defaultCategories {
		var count int64
		if err := db.Model(&entity.Category{}).
			Where("slug = ?", category.Slug).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&category).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedShowcase inserts every seed whose slug is not taken yet. Seed ids are
// ignored so the database assigns its own.
func SeedShowcase(db *gorm.DB, seeds []IPSeed) error {
	for _, seed := range seeds {
		var count int64
		if err := db.Model(&entity.IPProfile{}).
			Where("slug = ?", seed.Profile.Slug).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			zap.L().Debug("showcase profile already exists, skipping seed", zap.String("slug", seed.Profile.Slug))
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			profile := seed.Profile
			profile.ID = 0
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}

			for _, p := range seed.Platforms {
				p.ID = 0
				p.IPID = profile.ID
				if err := tx.Create(&p).Error; err != nil {
					return err
				}
			}

			for _, w := range seed.Works {
				w.ID = 0
				w.IPID = profile.ID
				if err := tx.Create(&w).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		zap.L().Info("showcase profile seeded", zap.String("slug", seed.Profile.Slug))
	}

	return nil
}
