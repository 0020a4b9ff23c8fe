package auth

const (
	RoleManager     = "Manager"
	RoleHR          = "HR"
	RoleSystemAdmin = "SystemAdmin"
)

const (
	PermAnalyticsRead  = "analytics.read"
	PermAnalyticsRun   = "analytics.run"
	PermFlagsResolve   = "analytics.flags.resolve"
	PermDecisionsRead  = "analytics.decisions.read"
	PermAppraisalRead  = "appraisal.read"
	PermAppraisalWrite = "appraisal.write"
	PermReportsExport  = "reports.export"
	PermSystemAdmin    = "admin.system"
)

var DefaultPermissions = []string{
	PermAnalyticsRead,
	PermAnalyticsRun,
	PermFlagsResolve,
	PermDecisionsRead,
	PermAppraisalRead,
	PermAppraisalWrite,
	PermReportsExport,
	PermSystemAdmin,
}

var RolePermissions = map[string][]string{
	RoleManager: {
		PermAnalyticsRead,
		PermAppraisalRead,
		PermAppraisalWrite,
	},
	RoleHR: {
		PermAnalyticsRead,
		PermAnalyticsRun,
		PermFlagsResolve,
		PermDecisionsRead,
		PermAppraisalRead,
		PermAppraisalWrite,
		PermReportsExport,
	},
	RoleSystemAdmin: {
		PermSystemAdmin,
	},
}
