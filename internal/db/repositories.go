package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	Partners      *PartnerRepository
	Credits       *CreditRepository
	Subscriptions *SubscriptionRepository
	Referrals     *ReferralRepository
	Conversations *ConversationRepository
	Gifts         *GiftRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Partners:      NewPartnerRepository(database),
		Credits:       NewCreditRepository(database),
		Subscriptions: NewSubscriptionRepository(database),
		Referrals:     NewReferralRepository(database),
		Conversations: NewConversationRepository(database),
		Gifts:         NewGiftRepository(database),
	}
}
