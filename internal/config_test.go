package internal_test

import (
	"strings"
	"time"

	"github.com/frahmantamala/tenant-ledger/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	valid := func() *internal.Config {
		return &internal.Config{
			Server: internal.ServerConfig{
				AllowedOrigins:    "https://app.ledger.test, *",
				UnauthorizedPath:  "/",
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Second,
			},
			Database: internal.DatabaseConfig{
				Source:       "postgres://localhost/ledger",
				MaxOpenConns: 10,
				MaxIdleConns: 5,
			},
			Security: internal.SecurityConfig{
				AccessTokenSecret:    strings.Repeat("a", 32),
				RefreshTokenSecret:   strings.Repeat("r", 32),
				AccessTokenDuration:  15 * time.Minute,
				RefreshTokenDuration: 24 * time.Hour,
			},
		}
	}

	It("accepts a complete configuration", func() {
		Expect(valid().Validate()).To(Succeed())
	})

	DescribeTable("rejects broken sections",
		func(mutate func(*internal.Config), fragment string) {
			cfg := valid()
			mutate(cfg)
			err := cfg.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(fragment))
		},
		Entry("relative redirect path", func(c *internal.Config) { c.Server.UnauthorizedPath = "home" }, "unauthorized_path"),
		Entry("read timeout below header timeout", func(c *internal.Config) { c.Server.ReadTimeout = time.Second }, "read_timeout"),
		Entry("missing database source", func(c *internal.Config) { c.Database.Source = "" }, "source is required"),
		Entry("more idle than open conns", func(c *internal.Config) { c.Database.MaxIdleConns = 20 }, "max_idle_conns"),
		Entry("short access secret", func(c *internal.Config) { c.Security.AccessTokenSecret = "short" }, "access token secret"),
		Entry("shared secrets", func(c *internal.Config) { c.Security.RefreshTokenSecret = c.Security.AccessTokenSecret }, "must differ"),
		Entry("access outlives refresh", func(c *internal.Config) { c.Security.AccessTokenDuration = 48 * time.Hour }, "shorter than"),
		Entry("inverted search bounds", func(c *internal.Config) { c.Search = internal.SearchConfig{MinQueryLength: 10, MaxQueryLength: 5} }, "min_query_length"),
	)

	Describe("ServerConfig.RedirectPath", func() {
		It("defaults to the application root", func() {
			Expect((&internal.ServerConfig{}).RedirectPath()).To(Equal("/"))
			Expect((&internal.ServerConfig{UnauthorizedPath: "/studio"}).RedirectPath()).To(Equal("/studio"))
		})
	})

	Describe("SearchConfig.WithDefaults", func() {
		It("fills the documented bounds", func() {
			cfg := internal.SearchConfig{ResultLimit: 10}.WithDefaults()
			Expect(cfg.MinQueryLength).To(Equal(3))
			Expect(cfg.MaxQueryLength).To(Equal(20))
			Expect(cfg.ResultLimit).To(Equal(10))
		})
	})

	Describe("LoadConfigFromEnv", func() {
		It("reads overrides and keeps defaults", func() {
			GinkgoT().Setenv("HTTP_PORT", "9090")
			GinkgoT().Setenv("SEARCH_RESULT_LIMIT", "50")
			GinkgoT().Setenv("READ_TIMEOUT", "not-a-duration")

			cfg := internal.LoadConfigFromEnv()
			Expect(cfg.Server.Port).To(Equal(9090))
			Expect(cfg.Search.ResultLimit).To(Equal(50))
			Expect(cfg.Server.ReadTimeout).To(Equal(15 * time.Second))
			Expect(cfg.Server.RedirectPath()).To(Equal("/"))
		})
	})
})
