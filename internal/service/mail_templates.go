package service

import "fmt"

func mailShell(siteName, heading, inner string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background-color:#f5f5f5;font-family:-apple-system,'Segoe UI',Roboto,Arial,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="padding:40px 20px;">
    <tr><td align="center">
      <table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:12px;overflow:hidden;max-width:100%%;">
        <tr>
          <td style="background:#1a1a1a;padding:32px;text-align:center;">
            <h1 style="margin:0;color:#ffffff;font-size:28px;">%s</h1>
          </td>
        </tr>
        <tr>
          <td style="padding:40px;">
            <h2 style="margin:0 0 16px;color:#1a1a1a;font-size:22px;">%s</h2>
            %s
          </td>
        </tr>
        <tr>
          <td style="padding:0 40px 32px;color:#a3a3a3;font-size:12px;">
            If you did not expect this email you can safely ignore it.
          </td>
        </tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`, siteName, heading, inner)
}

func verifyMailBody(siteName, link string) string {
	inner := fmt.Sprintf(`<p style="color:#525252;font-size:15px;line-height:1.6;">
Your account is almost ready. Click the button below to confirm your email
address and finish setting up your name and password.</p>
<p style="text-align:center;margin:32px 0;">
  <a href="%s" style="background:#059669;color:#ffffff;padding:12px 28px;border-radius:8px;text-decoration:none;font-size:15px;">Complete registration</a>
</p>
<p style="color:#a3a3a3;font-size:13px;">This link expires in 15 days.</p>`, link)

	return mailShell(siteName, "Confirm your registration", inner)
}

func resetMailBody(siteName, link string) string {
	inner := fmt.Sprintf(`<p style="color:#525252;font-size:15px;line-height:1.6;">
A password reset was requested for your account. Click the button below to
choose a new password.</p>
<p style="text-align:center;margin:32px 0;">
  <a href="%s" style="background:#1a1a1a;color:#ffffff;padding:12px 28px;border-radius:8px;text-decoration:none;font-size:15px;">Reset password</a>
</p>
<p style="color:#a3a3a3;font-size:13px;">This link expires in 15 days. If you
did not request a reset, your password is unchanged.</p>`, link)

	return mailShell(siteName, "Password reset", inner)
}

func loginMailBody(siteName, when, ipAddress, userAgent string) string {
	inner := fmt.Sprintf(`<p style="color:#525252;font-size:15px;line-height:1.6;">
A new login to your account was detected. Please review the details below.</p>
<table cellpadding="6" cellspacing="0" style="background:#f5f5f5;border-radius:8px;width:100%%;font-size:14px;color:#1a1a1a;">
  <tr><td style="color:#525252;width:120px;">Time</td><td>%s</td></tr>
  <tr><td style="color:#525252;">IP address</td><td>%s</td></tr>
  <tr><td style="color:#525252;">Device</td><td>%s</td></tr>
</table>
<p style="color:#a3a3a3;font-size:13px;margin-top:24px;">If this was not you,
reset your password immediately.</p>`, when, ipAddress, userAgent)

	return mailShell(siteName, "New login detected", inner)
}

func customMailBody(siteName, subject, body string) string {
	// body is admin-authored HTML and embedded verbatim
	return mailShell(siteName, subject, body)
}
