package rbac_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/core/status"
	"github.com/frahmantamala/tenant-ledger/internal/permission"
	"github.com/frahmantamala/tenant-ledger/internal/rbac"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Guard", func() {
	var (
		ctx   context.Context
		repo  *mockRepository
		guard *rbac.Guard

		readAccount = permission.MustParse("read:company-account")
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockRepository()
		guard = rbac.NewGuard(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

		repo.users["owner"] = user{email: "owner@acme.test", name: "Olive Owner"}
		repo.users["clerk"] = user{email: "clerk@acme.test", name: "Carl Clerk"}
		repo.users["viewer"] = user{email: "viewer@acme.test", name: "Vera Viewer"}

		repo.addMembership(&rbac.Membership{ID: "m-owner", UserID: "owner", CompanyID: "acme", IsOwner: true, CompanyStatus: status.PlatformActive.Key})
		repo.addMembership(&rbac.Membership{ID: "m-clerk", UserID: "clerk", CompanyID: "acme", CompanyStatus: status.PlatformActive.Key},
			permission.Grant{Action: "read", Entity: "company-account", Access: "own"},
			permission.Grant{Action: "create", Entity: "company-sale", Access: "any"},
		)
		repo.addMembership(&rbac.Membership{ID: "m-viewer", UserID: "viewer", CompanyID: "acme", CompanyStatus: status.PlatformActive.Key})
	})

	Describe("RequireCompanyUser", func() {
		It("lets the owner through without consulting roles", func() {
			u, err := guard.RequireCompanyUser(ctx, "owner", "acme", permission.MustParse("delete:company-everything"))
			Expect(err).NotTo(HaveOccurred())
			Expect(u).To(Equal(&rbac.UserProjection{ID: "owner"}))
			Expect(repo.grantLookups).To(BeZero())
		})

		It("lets a member through when a role grants the permission", func() {
			u, err := guard.RequireCompanyUser(ctx, "clerk", "acme", readAccount)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(Equal("clerk"))
		})

		It("honours the access list of the requirement", func() {
			_, err := guard.RequireCompanyUser(ctx, "clerk", "acme", permission.MustParse("read:company-account:own,any"))
			Expect(err).NotTo(HaveOccurred())

			_, err = guard.RequireCompanyUser(ctx, "clerk", "acme", permission.MustParse("read:company-account:any"))
			Expect(errors.Is(err, internal.ErrCompanyAccessDenied)).To(BeTrue())
		})

		It("denies a member whose roles do not grant the permission", func() {
			u, err := guard.RequireCompanyUser(ctx, "viewer", "acme", readAccount)
			Expect(u).To(BeNil())
			Expect(errors.Is(err, internal.ErrCompanyAccessDenied)).To(BeTrue())
		})

		It("denies a user with no membership in the company", func() {
			_, err := guard.RequireCompanyUser(ctx, "clerk", "globex", readAccount)
			Expect(errors.Is(err, internal.ErrCompanyAccessDenied)).To(BeTrue())
		})

		It("denies empty identifiers without touching the store", func() {
			repo.err = errDatabase

			_, err := guard.RequireCompanyUser(ctx, "", "acme", readAccount)
			Expect(errors.Is(err, internal.ErrCompanyAccessDenied)).To(BeTrue())

			_, err = guard.RequireCompanyUser(ctx, "owner", "", readAccount)
			Expect(errors.Is(err, internal.ErrCompanyAccessDenied)).To(BeTrue())
		})

		DescribeTable("denies everyone, owners included, when the company is not active",
			func(key string) {
				repo.memberships["owner"]["acme"].CompanyStatus = key
				repo.memberships["clerk"]["acme"].CompanyStatus = key

				_, err := guard.RequireCompanyUser(ctx, "owner", "acme", readAccount)
				Expect(errors.Is(err, internal.ErrCompanyAccessDenied)).To(BeTrue())

				_, err = guard.RequireCompanyUser(ctx, "clerk", "acme", readAccount)
				Expect(errors.Is(err, internal.ErrCompanyAccessDenied)).To(BeTrue())
			},
			Entry("in review", status.PlatformInReview.Key),
			Entry("suspended", status.PlatformSuspended.Key),
			Entry("deleted", status.PlatformDeleted.Key),
			Entry("unknown", "ARCHIVED"),
		)

		It("returns an internal error when the store fails", func() {
			repo.err = errDatabase

			_, err := guard.RequireCompanyUser(ctx, "clerk", "acme", readAccount)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, internal.ErrCompanyAccessDenied)).To(BeFalse())
			Expect(errors.Is(err, errDatabase)).To(BeTrue())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusInternalServerError))
		})

		Describe("projection", func() {
			It("returns exactly the selected fields", func() {
				u, err := guard.RequireCompanyUser(ctx, "clerk", "acme", readAccount, rbac.Select{Email: true})
				Expect(err).NotTo(HaveOccurred())
				Expect(u).To(Equal(&rbac.UserProjection{ID: "clerk", Email: "clerk@acme.test"}))

				u, err = guard.RequireCompanyUser(ctx, "clerk", "acme", readAccount, rbac.Select{Name: true, Membership: true})
				Expect(err).NotTo(HaveOccurred())
				Expect(u).To(Equal(&rbac.UserProjection{ID: "clerk", Name: "Carl Clerk", MembershipID: "m-clerk"}))
			})

			It("fills the membership id without loading the user", func() {
				repo.users = map[string]user{}

				u, err := guard.RequireCompanyUser(ctx, "owner", "acme", readAccount, rbac.Select{Membership: true})
				Expect(err).NotTo(HaveOccurred())
				Expect(u).To(Equal(&rbac.UserProjection{ID: "owner", MembershipID: "m-owner"}))
			})

			It("denies when the selected user row has gone", func() {
				delete(repo.users, "clerk")

				_, err := guard.RequireCompanyUser(ctx, "clerk", "acme", readAccount, rbac.Select{Email: true})
				Expect(errors.Is(err, internal.ErrCompanyAccessDenied)).To(BeTrue())
			})
		})
	})

	Describe("RequireUserWithPermission", func() {
		updateAny := permission.MustParse("update:company:any")

		BeforeEach(func() {
			repo.userGrants["admin"] = []permission.Grant{{Action: "update", Entity: "company", Access: "any"}}
		})

		It("returns the user id when a global role grants the permission", func() {
			id, err := guard.RequireUserWithPermission(ctx, "admin", updateAny)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal("admin"))
		})

		It("reports the required permission on denial", func() {
			_, err := guard.RequireUserWithPermission(ctx, "clerk", updateAny)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusForbidden))
			Expect(appErr.Code).To(Equal(internal.ErrCodePermissionRequired))
			Expect(appErr.Message).To(Equal("Unauthorized: required permissions: update:company:any"))
			Expect(appErr.Details).To(Equal(rbac.PermissionRequirement{RequiredPermission: updateAny}))
		})

		It("does not read company memberships", func() {
			_, err := guard.RequireUserWithPermission(ctx, "clerk", permission.MustParse("create:company-sale"))
			Expect(err).To(HaveOccurred())
			Expect(repo.grantLookups).To(BeZero())
		})
	})

	Describe("RequireUserWithRole", func() {
		BeforeEach(func() {
			repo.userRoles["admin"] = []string{"admin", "user"}
		})

		It("returns the user id for a holder of the role", func() {
			id, err := guard.RequireUserWithRole(ctx, "admin", "admin")
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal("admin"))
		})

		It("reports the required role on denial", func() {
			_, err := guard.RequireUserWithRole(ctx, "clerk", "admin")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusForbidden))
			Expect(appErr.Message).To(Equal("Unauthorized: required role: admin"))
			Expect(appErr.Details).To(Equal(rbac.RoleRequirement{RequiredRole: "admin"}))
		})

		It("surfaces store failures as internal errors", func() {
			repo.err = errDatabase

			_, err := guard.RequireUserWithRole(ctx, "admin", "admin")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusInternalServerError))
		})
	})
})
