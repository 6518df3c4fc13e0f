package httpserver

// dashboardHTML is the single-page report browser. It only talks to the
// JSON API and refreshes itself every few seconds, matching the polling
// contract of the report file.
const dashboardHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>loglens dashboard</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.4/dist/chart.umd.min.js"></script>
  <style>
    body { font-family: 'Segoe UI', sans-serif; background: #f8fafc; color: #1e293b; margin: 0; padding: 24px; }
    h1 { font-size: 20px; }
    .grid { display: grid; gap: 20px; grid-template-columns: repeat(auto-fit, minmax(380px, 1fr)); }
    .card { background: #fff; border: 1px solid #e2e8f0; border-radius: 12px; padding: 16px; }
    .card h3 { margin-top: 0; font-size: 15px; }
    .kpis { display: flex; gap: 16px; flex-wrap: wrap; margin-bottom: 20px; }
    .kpi { background: #fff; border: 1px solid #e2e8f0; border-radius: 12px; padding: 12px 20px; }
    .kpi .value { font-size: 22px; font-weight: 700; }
    .kpi .label { font-size: 12px; color: #64748b; }
    table { width: 100%; border-collapse: collapse; font-size: 13px; }
    th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #e2e8f0; }
    #status { color: #64748b; font-size: 12px; }
  </style>
</head>
<body>
  <h1>loglens &mdash; access log analysis</h1>
  <div id="status">loading&hellip;</div>
  <div class="kpis">
    <div class="kpi"><div class="value" id="kpi-requests">-</div><div class="label">total requests</div></div>
    <div class="kpi"><div class="value" id="kpi-bytes">-</div><div class="label">total bytes</div></div>
    <div class="kpi"><div class="value" id="kpi-errors">-</div><div class="label">error rate</div></div>
    <div class="kpi"><div class="value" id="kpi-peak">-</div><div class="label">peak hour (UTC)</div></div>
  </div>
  <div class="grid">
    <div class="card"><h3>Requests per server</h3><canvas id="chart-requests"></canvas></div>
    <div class="card"><h3>Error rate per server (%)</h3><canvas id="chart-errors"></canvas></div>
    <div class="card"><h3>Requests by hour</h3><canvas id="chart-hours"></canvas></div>
    <div class="card"><h3>Region distribution</h3><canvas id="chart-regions"></canvas></div>
    <div class="card"><h3>Top paths (global)</h3><table id="top-paths"><thead><tr><th>path</th><th>requests</th></tr></thead><tbody></tbody></table></div>
  </div>
  <script>
    const charts = {};
    function upsertChart(id, type, data, options) {
      if (charts[id]) { charts[id].data = data; charts[id].update(); return; }
      charts[id] = new Chart(document.getElementById(id), { type, data, options });
    }

    async function refresh() {
      let resp;
      try { resp = await fetch('/api/summary'); } catch (e) { return; }
      if (!resp.ok) {
        document.getElementById('status').textContent = 'no report yet - run loglens first';
        return;
      }
      const report = await resp.json();
      document.getElementById('status').textContent = 'updated ' + new Date().toLocaleTimeString();

      const g = report.global;
      document.getElementById('kpi-requests').textContent = g.total_requests.toLocaleString();
      document.getElementById('kpi-bytes').textContent = g.total_bytes.toLocaleString();
      document.getElementById('kpi-errors').textContent = (g.error_rate * 100).toFixed(2) + '%';
      document.getElementById('kpi-peak').textContent = g.peak_hour === null ? '-' : g.peak_hour + ':00';

      const names = Object.keys(report.servers).sort();
      upsertChart('chart-requests', 'bar', {
        labels: names,
        datasets: [{ label: 'requests', data: names.map(n => report.servers[n].total_requests), backgroundColor: '#3b82f6' }]
      });
      upsertChart('chart-errors', 'bar', {
        labels: names,
        datasets: [{ label: 'error %', data: names.map(n => report.servers[n].error_rate * 100), backgroundColor: '#ef4444' }]
      });

      const hours = [...Array(24).keys()];
      upsertChart('chart-hours', 'line', {
        labels: hours,
        datasets: names.map((n, i) => ({
          label: n,
          data: hours.map(h => report.servers[n].hour_histogram[h] || 0),
          borderColor: ['#3b82f6', '#ef4444', '#22c55e', '#f59e0b', '#8b5cf6'][i % 5],
          fill: false,
        }))
      });

      const regions = Object.keys(g.region_distribution).sort();
      upsertChart('chart-regions', 'doughnut', {
        labels: regions,
        datasets: [{ data: regions.map(r => g.region_distribution[r]), backgroundColor: ['#3b82f6', '#ef4444', '#22c55e', '#f59e0b', '#64748b'] }]
      });

      const tbody = document.querySelector('#top-paths tbody');
      tbody.innerHTML = '';
      for (const entry of g.top_paths) {
        const row = document.createElement('tr');
        row.innerHTML = '<td>' + entry.path + '</td><td>' + entry.count.toLocaleString() + '</td>';
        tbody.appendChild(row);
      }
    }

    refresh();
    setInterval(refresh, 5000);
  </script>
</body>
</html>
`
