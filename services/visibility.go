package services

import (
	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/model"
)

// Visibility rules for shared content. The same rule applies to notes, files
// and whiteboards:
//
//   - staff see only their own items, regardless of sharing flags;
//   - students see their own items plus shared items carrying a teacher code
//     they have connected to (including the legacy single code);
//   - anyone may browse a specific teacher's shared items through the
//     discovery path, connected or not.

// FeedFilter builds the personal-feed filter for the requester.
func FeedFilter(user *model.User) database.ContentFilter {
	if user.IsStaff() {
		return database.ContentFilter{AuthorID: user.ID}
	}
	return database.ContentFilter{
		AuthorID:    user.ID,
		SharedCodes: user.ConnectedCodes(),
	}
}

// DiscoveryFilter builds the public-discovery filter over one teacher's shared
// items.
func DiscoveryFilter(staff *model.User) database.ContentFilter {
	return database.ContentFilter{AuthorID: staff.ID, SharedOnly: true}
}

// CanView reports whether the requester may read a single item given its
// owner, sharing flag and teacher code.
func CanView(user *model.User, ownerID uint, isShared bool, teacherCode *string) bool {
	if ownerID == user.ID {
		return true
	}
	if user.IsStaff() || !isShared || teacherCode == nil {
		return false
	}
	for _, code := range user.ConnectedCodes() {
		if code == *teacherCode {
			return true
		}
	}
	return false
}

// CanMutate reports whether the requester may update or delete an item. Only
// the owner may, regardless of role.
func CanMutate(user *model.User, ownerID uint) bool {
	return ownerID == user.ID
}

// SharingFields computes the (isShared, teacherCode) pair to store on a
// content item. Only staff can share; sharing stamps the item with the owner's
// current code, unsharing clears it.
func SharingFields(owner *model.User, requested bool) (bool, *string) {
	if !owner.IsStaff() || !requested {
		return false, nil
	}
	code := owner.SharingCode()
	if code == "" {
		return false, nil
	}
	return true, &code
}
